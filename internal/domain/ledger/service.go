package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lending-ledger/internal/event"
	"lending-ledger/internal/infrastructure/monitoring"
	"lending-ledger/internal/pkg/apperrors"
)

// Cache is cleared after every successful mutation so read-side consumers do
// not serve stale report snapshots.
type Cache interface {
	Clear(ctx context.Context) error
}

type CreateBorrowerParams struct {
	Name         string
	Department   string
	Phone        string
	Principal    Money
	InterestRate Money
	StartDate    time.Time
	Months       int
}

type Service interface {
	CreateBorrower(ctx context.Context, params CreateBorrowerParams) (*Borrower, error)

	RecordPayment(ctx context.Context, borrowerID int64, principalPaid, interestPaid Money) (*Payment, error)

	GetBorrower(ctx context.Context, borrowerID int64) (*Borrower, error)

	ListBorrowers(ctx context.Context) ([]Borrower, error)

	GetSchedule(ctx context.Context, borrowerID int64) ([]ScheduleEntry, error)
}

type serviceImpl struct {
	repo   Repository
	pub    event.Publisher
	cache  Cache
	logger *slog.Logger
}

func NewService(repo Repository, pub event.Publisher, cache Cache, logger *slog.Logger) Service {
	if repo == nil {
		panic("ledger repository cannot be nil")
	}
	return &serviceImpl{
		repo:   repo,
		pub:    pub,
		cache:  cache,
		logger: logger.With(slog.String("component", "ledgerService")),
	}
}

// Every mutation runs one full pass: load both tables, append the new row,
// recompute all remaining balances, and write both tables back wholesale.
// There is no incremental update path; the recomputation is idempotent so a
// retried pass converges to the same state.

func (s *serviceImpl) CreateBorrower(ctx context.Context, params CreateBorrowerParams) (*Borrower, error) {
	s.logger.InfoContext(ctx, "Creating new borrower")

	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		return nil, apperrors.NewValidationError("name", "must not be empty")
	}
	if params.Principal < 0 {
		return nil, apperrors.NewValidationError("principal", "must not be negative")
	}
	if params.InterestRate < 0 {
		return nil, apperrors.NewValidationError("interestRate", "must not be negative")
	}
	if params.Months < 1 {
		return nil, fmt.Errorf("%w: got %d", apperrors.ErrInvalidTerm, params.Months)
	}
	if params.StartDate.IsZero() {
		params.StartDate = time.Now().Truncate(24 * time.Hour)
	}

	borrowers, payments, err := s.loadTables(ctx)
	if err != nil {
		return nil, err
	}

	borrowers = AppendBorrower(borrowers, params.Name, params.Department, params.Phone,
		params.Principal, params.InterestRate, params.StartDate, params.Months)
	borrowers = RecomputeBalances(borrowers, payments)
	created := borrowers[len(borrowers)-1]

	if err := s.repo.ReplaceBorrowers(ctx, borrowers); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save borrower table", slog.Any("error", err))
		monitoring.RecordBorrowerCreated("failure")
		return nil, fmt.Errorf("%w: failed to save borrower table: %v", apperrors.ErrInternalServer, err)
	}

	s.clearCache(ctx)
	s.publishBorrowerCreated(ctx, created)
	monitoring.RecordBorrowerCreated("success")
	s.logger.InfoContext(ctx, "Borrower created", slog.Int64("borrowerID", created.BorrowerID))

	return &created, nil
}

func (s *serviceImpl) RecordPayment(ctx context.Context, borrowerID int64, principalPaid, interestPaid Money) (*Payment, error) {
	logCtx := s.logger.With(slog.Int64("borrowerID", borrowerID))
	logCtx.InfoContext(ctx, "Recording payment", "principal", principalPaid, "interest", interestPaid)

	if principalPaid < 0 || interestPaid < 0 {
		monitoring.RecordPayment("failure_amount")
		return nil, fmt.Errorf("%w: amounts must not be negative", apperrors.ErrInvalidPaymentAmount)
	}

	borrowers, payments, err := s.loadTables(ctx)
	if err != nil {
		return nil, err
	}

	if _, ok := FindBorrower(borrowers, borrowerID); !ok {
		logCtx.WarnContext(ctx, "Borrower not found")
		monitoring.RecordPayment("failure_not_found")
		return nil, fmt.Errorf("%w: borrower %d not found", apperrors.ErrNotFound, borrowerID)
	}

	// Amounts above the remaining balance are accepted and land as a
	// negative remaining balance; refusing them is the input form's job.
	payments = AppendPayment(payments, borrowerID, principalPaid, interestPaid, time.Now())
	borrowers = RecomputeBalances(borrowers, payments)
	recorded := payments[len(payments)-1]

	if err := s.repo.ReplacePayments(ctx, payments); err != nil {
		logCtx.ErrorContext(ctx, "Failed to save payment table", slog.Any("error", err))
		monitoring.RecordPayment("failure_internal")
		return nil, fmt.Errorf("%w: failed to save payment table: %v", apperrors.ErrInternalServer, err)
	}
	if err := s.repo.ReplaceBorrowers(ctx, borrowers); err != nil {
		logCtx.ErrorContext(ctx, "Failed to save recomputed borrower table", slog.Any("error", err))
		monitoring.RecordPayment("failure_internal")
		return nil, fmt.Errorf("%w: failed to save borrower table: %v", apperrors.ErrInternalServer, err)
	}

	s.clearCache(ctx)
	s.publishPaymentRecorded(ctx, recorded)
	monitoring.RecordPayment("success")
	logCtx.InfoContext(ctx, "Payment recorded", slog.Int64("paymentID", recorded.PaymentID))

	return &recorded, nil
}

func (s *serviceImpl) GetBorrower(ctx context.Context, borrowerID int64) (*Borrower, error) {
	borrowers, payments, err := s.loadTables(ctx)
	if err != nil {
		return nil, err
	}

	borrowers = RecomputeBalances(borrowers, payments)
	b, ok := FindBorrower(borrowers, borrowerID)
	if !ok {
		s.logger.WarnContext(ctx, "Borrower not found", slog.Int64("borrowerID", borrowerID))
		return nil, fmt.Errorf("%w: borrower %d not found", apperrors.ErrNotFound, borrowerID)
	}
	return &b, nil
}

func (s *serviceImpl) ListBorrowers(ctx context.Context) ([]Borrower, error) {
	borrowers, payments, err := s.loadTables(ctx)
	if err != nil {
		return nil, err
	}
	return RecomputeBalances(borrowers, payments), nil
}

func (s *serviceImpl) GetSchedule(ctx context.Context, borrowerID int64) ([]ScheduleEntry, error) {
	b, err := s.GetBorrower(ctx, borrowerID)
	if err != nil {
		return nil, err
	}

	// The rate is not stored; it is recovered from the totals fixed at
	// creation.
	var rate Money
	if b.PrincipalTotal > 0 {
		rate = b.InterestTotal / b.PrincipalTotal
	}

	return BuildSchedule(b.PrincipalTotal, rate, b.MonthsToPay, b.LoanStartDate)
}

func (s *serviceImpl) loadTables(ctx context.Context) ([]Borrower, []Payment, error) {
	borrowers, err := s.repo.LoadBorrowers(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load borrower table", slog.Any("error", err))
		return nil, nil, fmt.Errorf("%w: failed to load borrowers: %v", apperrors.ErrInternalServer, err)
	}
	payments, err := s.repo.LoadPayments(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load payment table", slog.Any("error", err))
		return nil, nil, fmt.Errorf("%w: failed to load payments: %v", apperrors.ErrInternalServer, err)
	}
	return borrowers, payments, nil
}

func (s *serviceImpl) clearCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Clear(ctx); err != nil {
		s.logger.WarnContext(ctx, "Failed to clear report cache", slog.Any("error", err))
	}
}

func (s *serviceImpl) publishBorrowerCreated(ctx context.Context, b Borrower) {
	if s.pub == nil {
		return
	}
	ev := event.BorrowerCreatedEvent{
		BorrowerID:     b.BorrowerID,
		Name:           b.Name,
		Department:     b.Department,
		PrincipalTotal: b.PrincipalTotal,
		InterestTotal:  b.InterestTotal,
		MonthsToPay:    b.MonthsToPay,
		LoanStartDate:  b.LoanStartDate.Format(DateLayout),
		Timestamp:      time.Now(),
	}
	if err := s.pub.PublishBorrowerCreated(ctx, ev); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish borrower created event", slog.Any("error", err))
	}
}

func (s *serviceImpl) publishPaymentRecorded(ctx context.Context, p Payment) {
	if s.pub == nil {
		return
	}
	ev := event.PaymentRecordedEvent{
		PaymentID:     p.PaymentID,
		BorrowerID:    p.BorrowerID,
		Date:          p.Date.Format(DateLayout),
		PrincipalPaid: p.PrincipalPaid,
		InterestPaid:  p.InterestPaid,
		Timestamp:     time.Now(),
	}
	if err := s.pub.PublishPaymentRecorded(ctx, ev); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish payment recorded event", slog.Any("error", err))
	}
}
