package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"lending-ledger/internal/domain/report"
	"lending-ledger/internal/infrastructure/monitoring"
)

// Archiver stores a rendered report file and returns the object key it was
// written under.
type Archiver interface {
	UploadXLSX(ctx context.Context, fileName string, data []byte) (string, error)
}

// MonthlyReportJob renders the previous calendar month's collection report as
// an XLSX workbook and archives it. Scheduled for the start of each month; a
// nil archiver degrades to rendering only, so the job still validates the
// report pipeline when archiving is disabled.
type MonthlyReportJob struct {
	reports report.Service
	archive Archiver
	logger  *slog.Logger
}

func NewMonthlyReportJob(reports report.Service, archive Archiver, logger *slog.Logger) *MonthlyReportJob {
	if reports == nil || logger == nil {
		panic("MonthlyReportJob dependencies cannot be nil")
	}
	return &MonthlyReportJob{
		reports: reports,
		archive: archive,
		logger:  logger.With("job", "MonthlyReport"),
	}
}

func (j *MonthlyReportJob) Run(ctx context.Context) error {
	month, year := previousPeriod(time.Now())
	return j.runForPeriod(ctx, month, year)
}

func (j *MonthlyReportJob) runForPeriod(ctx context.Context, month time.Month, year int) error {
	startTime := time.Now()
	logCtx := j.logger.With(slog.Int("year", year), slog.Int("month", int(month)))
	logCtx.InfoContext(ctx, "Starting monthly report job.")

	summary, err := j.reports.Monthly(ctx, month, year)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to build monthly summary, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to build monthly summary: %w", err)
	}

	pending, err := j.reports.Pending(ctx)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to build pending balances, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to build pending balances: %w", err)
	}

	data, err := report.BuildMonthlyWorkbook(*summary, pending)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to render report workbook.", slog.Any("error", err))
		return fmt.Errorf("failed to render report workbook: %w", err)
	}
	monitoring.RecordReportExport("xlsx")

	if j.archive == nil {
		logCtx.InfoContext(ctx, "Report archiving disabled, workbook rendered but not uploaded.",
			slog.Duration("duration", time.Since(startTime)))
		return nil
	}

	fileName := report.ExportFileName(year, month, "xlsx")
	objectName := fmt.Sprintf("%04d/%02d/%s-%s", year, int(month), uuid.NewString(), fileName)

	key, err := j.archive.UploadXLSX(ctx, objectName, data)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to archive report workbook.", slog.Any("error", err))
		return fmt.Errorf("failed to archive report workbook: %w", err)
	}

	logCtx.InfoContext(ctx, "Monthly report job finished successfully.",
		slog.String("object_key", key),
		slog.Int("pending_rows", len(pending)),
		slog.Int("payments_in_period", summary.NumPayments),
		slog.Duration("duration", time.Since(startTime)),
	)
	return nil
}

func previousPeriod(now time.Time) (time.Month, int) {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prev := firstOfMonth.AddDate(0, 0, -1)
	return prev.Month(), prev.Year()
}
