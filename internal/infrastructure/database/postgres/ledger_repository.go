package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"

	"lending-ledger/internal/domain/ledger"
	"lending-ledger/internal/infrastructure/monitoring"
	"lending-ledger/internal/pkg/apperrors"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

var errMsgFormat = "%w: %w"

// LedgerRepository persists the borrower and payment tables. Saves follow the
// backing store's snapshot semantics: the table is cleared and rewritten in
// one transaction, never updated incrementally. Load coerces defensively:
// NULL amounts contribute zero and unparseable dates come back as the zero
// time, so malformed rows degrade silently instead of failing the load.
type LedgerRepository struct {
	db     DBPool
	logger *slog.Logger
}

func NewLedgerRepository(db DBPool, logger *slog.Logger) *LedgerRepository {
	return &LedgerRepository{db: db, logger: logger.With("component", "LedgerRepository")}
}

func (r *LedgerRepository) LoadBorrowers(ctx context.Context) ([]ledger.Borrower, error) {
	query := `
        SELECT borrower_id, name, department, phone, principal_total, interest_total,
               loan_start_date, months_to_pay, principal_remaining, interest_remaining
        FROM borrowers
        ORDER BY borrower_id ASC`
	status := "success"
	startTime := time.Now()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		monitoring.RecordDBQuery("LoadBorrowers", "error", time.Since(startTime))
		r.logger.ErrorContext(ctx, "Failed to query borrowers", "error", err)
		return nil, translateDBError(err, r.logger)
	}
	defer rows.Close()

	borrowers := make([]ledger.Borrower, 0)
	for rows.Next() {
		var (
			b          ledger.Borrower
			department *string
			phone      *string
			startDate  *string
			amounts    = []*float64{nil, nil, nil, nil}
			months     *int
		)
		err := rows.Scan(
			&b.BorrowerID, &b.Name, &department, &phone, &amounts[0], &amounts[1],
			&startDate, &months, &amounts[2], &amounts[3],
		)
		if err != nil {
			monitoring.RecordDBQuery("LoadBorrowers", "error", time.Since(startTime))
			r.logger.ErrorContext(ctx, "Failed to scan borrower row", "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}

		b.Department = stringOrEmpty(department)
		b.Phone = stringOrEmpty(phone)
		b.PrincipalTotal = floatOrZero(amounts[0])
		b.InterestTotal = floatOrZero(amounts[1])
		b.PrincipalRemaining = floatOrZero(amounts[2])
		b.InterestRemaining = floatOrZero(amounts[3])
		if months != nil {
			b.MonthsToPay = *months
		}
		b.LoanStartDate = parseDateOrZero(startDate)

		borrowers = append(borrowers, b)
	}

	if err = rows.Err(); err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery("LoadBorrowers", status, time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Error iterating borrower rows", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return borrowers, nil
}

func (r *LedgerRepository) LoadPayments(ctx context.Context) ([]ledger.Payment, error) {
	query := `
        SELECT payment_id, borrower_id, date, principal_paid, interest_paid
        FROM payments
        ORDER BY payment_id ASC`
	status := "success"
	startTime := time.Now()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		monitoring.RecordDBQuery("LoadPayments", "error", time.Since(startTime))
		r.logger.ErrorContext(ctx, "Failed to query payments", "error", err)
		return nil, translateDBError(err, r.logger)
	}
	defer rows.Close()

	payments := make([]ledger.Payment, 0)
	for rows.Next() {
		var (
			p         ledger.Payment
			date      *string
			principal *float64
			interest  *float64
		)
		if err := rows.Scan(&p.PaymentID, &p.BorrowerID, &date, &principal, &interest); err != nil {
			monitoring.RecordDBQuery("LoadPayments", "error", time.Since(startTime))
			r.logger.ErrorContext(ctx, "Failed to scan payment row", "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		p.Date = parseDateOrZero(date)
		p.PrincipalPaid = floatOrZero(principal)
		p.InterestPaid = floatOrZero(interest)
		payments = append(payments, p)
	}

	if err = rows.Err(); err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery("LoadPayments", status, time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Error iterating payment rows", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return payments, nil
}

func (r *LedgerRepository) ReplaceBorrowers(ctx context.Context, borrowers []ledger.Borrower) error {
	insertSQL := `
        INSERT INTO borrowers (borrower_id, name, department, phone, principal_total, interest_total,
                               loan_start_date, months_to_pay, principal_remaining, interest_remaining)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	batch := &pgx.Batch{}
	for _, b := range borrowers {
		batch.Queue(insertSQL,
			b.BorrowerID, b.Name, b.Department, b.Phone, b.PrincipalTotal, b.InterestTotal,
			formatDate(b.LoanStartDate), b.MonthsToPay, b.PrincipalRemaining, b.InterestRemaining,
		)
	}

	return r.replaceTable(ctx, "borrowers", batch, len(borrowers))
}

func (r *LedgerRepository) ReplacePayments(ctx context.Context, payments []ledger.Payment) error {
	insertSQL := `
        INSERT INTO payments (payment_id, borrower_id, date, principal_paid, interest_paid)
        VALUES ($1, $2, $3, $4, $5)`

	batch := &pgx.Batch{}
	for _, p := range payments {
		batch.Queue(insertSQL, p.PaymentID, p.BorrowerID, formatDate(p.Date), p.PrincipalPaid, p.InterestPaid)
	}

	return r.replaceTable(ctx, "payments", batch, len(payments))
}

// replaceTable runs the clear-and-rewrite save: delete every row, then batch
// insert the new snapshot, all inside one transaction so a concurrent reader
// never observes a half-written table.
func (r *LedgerRepository) replaceTable(ctx context.Context, table string, batch *pgx.Batch, numRows int) error {
	logCtx := r.logger.With(slog.String("table", table))
	status := "success"
	startTime := time.Now()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to begin transaction", "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logCtx.ErrorContext(ctx, "Failed to rollback transaction", "error", rbErr)
		}
	}()

	if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
		monitoring.RecordDBQuery("Replace_"+table, "error", time.Since(startTime))
		logCtx.ErrorContext(ctx, "Failed to clear table", "error", err)
		return fmt.Errorf("%w: failed to clear %s: %w", apperrors.ErrDatabase, table, err)
	}

	if numRows > 0 {
		results := tx.SendBatch(ctx, batch)
		for i := 0; i < numRows; i++ {
			if _, err := results.Exec(); err != nil {
				results.Close()
				monitoring.RecordDBQuery("Replace_"+table, "error", time.Since(startTime))
				logCtx.ErrorContext(ctx, "Failed executing batch insert", "error", err, "row_index", i)
				return fmt.Errorf("%w: failed inserting row %d into %s: %w", apperrors.ErrDatabase, i+1, table, err)
			}
		}
		if err := results.Close(); err != nil {
			monitoring.RecordDBQuery("Replace_"+table, "error", time.Since(startTime))
			logCtx.ErrorContext(ctx, "Failed closing batch results", "error", err)
			return fmt.Errorf("%w: closing batch results failed: %w", apperrors.ErrDatabase, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		status = "error"
		monitoring.RecordDBQuery("Replace_"+table, status, time.Since(startTime))
		logCtx.ErrorContext(ctx, "Failed to commit transaction", "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("Replace_"+table, status, time.Since(startTime))
	logCtx.InfoContext(ctx, "Table snapshot written", slog.Int("rows", numRows))
	return nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func parseDateOrZero(s *string) time.Time {
	if s == nil {
		return time.Time{}
	}
	t, err := time.Parse(ledger.DateLayout, *s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(ledger.DateLayout)
}

func translateDBError(err error, contextLogger *slog.Logger) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {

		if pgErr.Code == "23505" {
			contextLogger.Warn("Database unique constraint violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, pgErr.ConstraintName)
		}

		contextLogger.Error("PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message, "detail", pgErr.Detail)
		return fmt.Errorf("%w: db error code %s", apperrors.ErrDatabase, pgErr.Code)
	}

	contextLogger.Error("Generic database error", "error", err)
	return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
}
