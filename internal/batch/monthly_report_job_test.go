package batch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lending-ledger/internal/domain/report"
)

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Monthly(ctx context.Context, month time.Month, year int) (*report.Summary, error) {
	args := m.Called(ctx, month, year)
	if summary, ok := args.Get(0).(*report.Summary); ok {
		return summary, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReportService) Dashboard(ctx context.Context) (*report.Stats, error) {
	args := m.Called(ctx)
	if stats, ok := args.Get(0).(*report.Stats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReportService) Pending(ctx context.Context) ([]report.PendingBalance, error) {
	args := m.Called(ctx)
	if pending, ok := args.Get(0).([]report.PendingBalance); ok {
		return pending, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReportService) History(ctx context.Context, borrowerID int64) ([]report.PaymentView, error) {
	args := m.Called(ctx, borrowerID)
	if history, ok := args.Get(0).([]report.PaymentView); ok {
		return history, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) UploadXLSX(ctx context.Context, fileName string, data []byte) (string, error) {
	args := m.Called(ctx, fileName, data)
	return args.String(0), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPreviousPeriod(t *testing.T) {
	month, year := previousPeriod(time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC))
	assert.Equal(t, time.February, month)
	assert.Equal(t, 2025, year)

	month, year = previousPeriod(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.December, month)
	assert.Equal(t, 2024, year)
}

func TestMonthlyReportJobRun(t *testing.T) {
	ctx := context.Background()

	summary := &report.Summary{Month: time.February, Year: 2025, TotalCollected: 560, NumPayments: 2}
	pending := []report.PendingBalance{
		{BorrowerID: 1, Name: "Aminah", PrincipalRemaining: 600, InterestRemaining: 50, TotalPending: 650},
	}

	t.Run("renders and archives the previous month's report", func(t *testing.T) {
		reports := new(MockReportService)
		archive := new(MockArchiver)

		reports.On("Monthly", ctx, time.February, 2025).Return(summary, nil).Once()
		reports.On("Pending", ctx).Return(pending, nil).Once()
		archive.On("UploadXLSX", ctx, mock.MatchedBy(func(name string) bool {
			return strings.HasPrefix(name, "2025/02/") && strings.HasSuffix(name, "loan_report_2025_02.xlsx")
		}), mock.MatchedBy(func(data []byte) bool {
			return len(data) > 0
		})).Return("reports/2025/02/loan_report_2025_02.xlsx", nil).Once()

		job := NewMonthlyReportJob(reports, archive, testLogger())
		err := job.runForPeriod(ctx, time.February, 2025)
		require.NoError(t, err)

		reports.AssertExpectations(t)
		archive.AssertExpectations(t)
	})

	t.Run("nil archiver renders without uploading", func(t *testing.T) {
		reports := new(MockReportService)
		reports.On("Monthly", ctx, time.February, 2025).Return(summary, nil).Once()
		reports.On("Pending", ctx).Return(pending, nil).Once()

		job := NewMonthlyReportJob(reports, nil, testLogger())
		err := job.runForPeriod(ctx, time.February, 2025)
		assert.NoError(t, err)
	})

	t.Run("aborts when the summary cannot be built", func(t *testing.T) {
		reports := new(MockReportService)
		archive := new(MockArchiver)
		reports.On("Monthly", ctx, time.February, 2025).Return(nil, errors.New("store unavailable")).Once()

		job := NewMonthlyReportJob(reports, archive, testLogger())
		err := job.runForPeriod(ctx, time.February, 2025)
		assert.Error(t, err)
		archive.AssertNotCalled(t, "UploadXLSX", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("upload failure surfaces as job error", func(t *testing.T) {
		reports := new(MockReportService)
		archive := new(MockArchiver)

		reports.On("Monthly", ctx, time.February, 2025).Return(summary, nil).Once()
		reports.On("Pending", ctx).Return(pending, nil).Once()
		archive.On("UploadXLSX", ctx, mock.Anything, mock.Anything).Return("", errors.New("bucket missing")).Once()

		job := NewMonthlyReportJob(reports, archive, testLogger())
		err := job.runForPeriod(ctx, time.February, 2025)
		assert.Error(t, err)
	})
}
