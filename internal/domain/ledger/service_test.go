package ledger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lending-ledger/internal/event"
	"lending-ledger/internal/pkg/apperrors"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) LoadBorrowers(ctx context.Context) ([]Borrower, error) {
	args := m.Called(ctx)
	borrowers, _ := args.Get(0).([]Borrower)
	return borrowers, args.Error(1)
}

func (m *MockRepository) LoadPayments(ctx context.Context) ([]Payment, error) {
	args := m.Called(ctx)
	payments, _ := args.Get(0).([]Payment)
	return payments, args.Error(1)
}

func (m *MockRepository) ReplaceBorrowers(ctx context.Context, borrowers []Borrower) error {
	args := m.Called(ctx, borrowers)
	return args.Error(0)
}

func (m *MockRepository) ReplacePayments(ctx context.Context, payments []Payment) error {
	args := m.Called(ctx, payments)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishBorrowerCreated(ctx context.Context, ev event.BorrowerCreatedEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockPublisher) PublishPaymentRecorded(ctx context.Context, ev event.PaymentRecordedEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newTestService(repo *MockRepository, pub *MockPublisher, cache *MockCache) Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var p event.Publisher
	if pub != nil {
		p = pub
	}
	var c Cache
	if cache != nil {
		c = cache
	}
	return NewService(repo, p, c, logger)
}

func validParams() CreateBorrowerParams {
	return CreateBorrowerParams{
		Name:         "Aminah",
		Department:   "Sales",
		Phone:        "012-3456789",
		Principal:    1000,
		InterestRate: 0.10,
		StartDate:    date(2025, 1, 1),
		Months:       10,
	}
}

func TestServiceCreateBorrower(t *testing.T) {
	ctx := context.Background()

	t.Run("appends, recomputes and saves the full table", func(t *testing.T) {
		repo := new(MockRepository)
		pub := new(MockPublisher)
		cache := new(MockCache)

		existing := []Borrower{{BorrowerID: 3, Name: "old", PrincipalTotal: 500, InterestTotal: 25}}
		repo.On("LoadBorrowers", ctx).Return(existing, nil).Once()
		repo.On("LoadPayments", ctx).Return([]Payment(nil), nil).Once()
		repo.On("ReplaceBorrowers", ctx, mock.MatchedBy(func(bs []Borrower) bool {
			return len(bs) == 2 && bs[1].BorrowerID == 4 && bs[1].InterestTotal == 100
		})).Return(nil).Once()
		cache.On("Clear", ctx).Return(nil).Once()
		pub.On("PublishBorrowerCreated", ctx, mock.AnythingOfType("event.BorrowerCreatedEvent")).Return(nil).Once()

		svc := newTestService(repo, pub, cache)
		created, err := svc.CreateBorrower(ctx, validParams())
		require.NoError(t, err)

		assert.Equal(t, int64(4), created.BorrowerID)
		assert.Equal(t, 1000.0, created.PrincipalRemaining)
		assert.Equal(t, 100.0, created.InterestRemaining)

		repo.AssertExpectations(t)
		pub.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		svc := newTestService(new(MockRepository), nil, nil)
		_, err := svc.CreateBorrower(ctx, CreateBorrowerParams{Name: "   ", Principal: 100, Months: 5})

		var validationErr *apperrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "name", validationErr.Field)
	})

	t.Run("rejects negative principal and rate", func(t *testing.T) {
		svc := newTestService(new(MockRepository), nil, nil)

		params := validParams()
		params.Principal = -1
		_, err := svc.CreateBorrower(ctx, params)
		var validationErr *apperrors.ValidationError
		assert.ErrorAs(t, err, &validationErr)

		params = validParams()
		params.InterestRate = -0.01
		_, err = svc.CreateBorrower(ctx, params)
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("rejects a term below one month", func(t *testing.T) {
		svc := newTestService(new(MockRepository), nil, nil)

		params := validParams()
		params.Months = 0
		_, err := svc.CreateBorrower(ctx, params)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTerm)
	})

	t.Run("defaults a zero start date to today", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("LoadBorrowers", ctx).Return([]Borrower(nil), nil).Once()
		repo.On("LoadPayments", ctx).Return([]Payment(nil), nil).Once()
		repo.On("ReplaceBorrowers", ctx, mock.Anything).Return(nil).Once()

		svc := newTestService(repo, nil, nil)
		params := validParams()
		params.StartDate = time.Time{}

		created, err := svc.CreateBorrower(ctx, params)
		require.NoError(t, err)
		assert.False(t, created.LoanStartDate.IsZero())
		assert.WithinDuration(t, time.Now(), created.LoanStartDate, time.Minute)
	})

	t.Run("wraps save failures as internal errors", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("LoadBorrowers", ctx).Return([]Borrower(nil), nil).Once()
		repo.On("LoadPayments", ctx).Return([]Payment(nil), nil).Once()
		repo.On("ReplaceBorrowers", ctx, mock.Anything).Return(errors.New("disk full")).Once()

		svc := newTestService(repo, nil, nil)
		_, err := svc.CreateBorrower(ctx, validParams())
		assert.ErrorIs(t, err, apperrors.ErrInternalServer)
	})
}

func TestServiceRecordPayment(t *testing.T) {
	ctx := context.Background()

	seedBorrowers := func() []Borrower {
		return []Borrower{{
			BorrowerID: 1, Name: "Aminah",
			PrincipalTotal: 1000, InterestTotal: 100,
			PrincipalRemaining: 1000, InterestRemaining: 100,
		}}
	}

	t.Run("appends the payment and rewrites both tables", func(t *testing.T) {
		repo := new(MockRepository)
		pub := new(MockPublisher)
		cache := new(MockCache)

		repo.On("LoadBorrowers", ctx).Return(seedBorrowers(), nil).Once()
		repo.On("LoadPayments", ctx).Return([]Payment(nil), nil).Once()
		repo.On("ReplacePayments", ctx, mock.MatchedBy(func(ps []Payment) bool {
			return len(ps) == 1 && ps[0].PaymentID == 1 && ps[0].PrincipalPaid == 400
		})).Return(nil).Once()
		repo.On("ReplaceBorrowers", ctx, mock.MatchedBy(func(bs []Borrower) bool {
			return len(bs) == 1 && bs[0].PrincipalRemaining == 600 && bs[0].InterestRemaining == 50
		})).Return(nil).Once()
		cache.On("Clear", ctx).Return(nil).Once()
		pub.On("PublishPaymentRecorded", ctx, mock.AnythingOfType("event.PaymentRecordedEvent")).Return(nil).Once()

		svc := newTestService(repo, pub, cache)
		recorded, err := svc.RecordPayment(ctx, 1, 400, 50)
		require.NoError(t, err)

		assert.Equal(t, int64(1), recorded.PaymentID)
		assert.Equal(t, int64(1), recorded.BorrowerID)

		repo.AssertExpectations(t)
		pub.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("accepts an overpayment", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("LoadBorrowers", ctx).Return(seedBorrowers(), nil).Once()
		repo.On("LoadPayments", ctx).Return([]Payment(nil), nil).Once()
		repo.On("ReplacePayments", ctx, mock.Anything).Return(nil).Once()
		repo.On("ReplaceBorrowers", ctx, mock.MatchedBy(func(bs []Borrower) bool {
			return bs[0].PrincipalRemaining == -500
		})).Return(nil).Once()

		svc := newTestService(repo, nil, nil)
		_, err := svc.RecordPayment(ctx, 1, 1500, 0)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects negative amounts before touching the store", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil, nil)

		_, err := svc.RecordPayment(ctx, 1, -10, 0)
		assert.ErrorIs(t, err, apperrors.ErrInvalidPaymentAmount)
		repo.AssertNotCalled(t, "LoadBorrowers", mock.Anything)
	})

	t.Run("unknown borrower yields not found", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("LoadBorrowers", ctx).Return(seedBorrowers(), nil).Once()
		repo.On("LoadPayments", ctx).Return([]Payment(nil), nil).Once()

		svc := newTestService(repo, nil, nil)
		_, err := svc.RecordPayment(ctx, 42, 100, 0)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		repo.AssertNotCalled(t, "ReplacePayments", mock.Anything, mock.Anything)
	})
}

func TestServiceGetBorrower(t *testing.T) {
	ctx := context.Background()

	t.Run("returns balances derived from the payment table", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("LoadBorrowers", ctx).Return([]Borrower{{
			BorrowerID: 1, PrincipalTotal: 1000, InterestTotal: 100,
			PrincipalRemaining: 1000, InterestRemaining: 100,
		}}, nil).Once()
		repo.On("LoadPayments", ctx).Return([]Payment{
			{PaymentID: 1, BorrowerID: 1, PrincipalPaid: 400, InterestPaid: 50},
		}, nil).Once()

		svc := newTestService(repo, nil, nil)
		b, err := svc.GetBorrower(ctx, 1)
		require.NoError(t, err)

		assert.Equal(t, 600.0, b.PrincipalRemaining)
		assert.Equal(t, 50.0, b.InterestRemaining)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("LoadBorrowers", ctx).Return([]Borrower(nil), nil).Once()
		repo.On("LoadPayments", ctx).Return([]Payment(nil), nil).Once()

		svc := newTestService(repo, nil, nil)
		_, err := svc.GetBorrower(ctx, 1)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("load failure wraps as internal error", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("LoadBorrowers", ctx).Return([]Borrower(nil), errors.New("conn refused")).Once()

		svc := newTestService(repo, nil, nil)
		_, err := svc.GetBorrower(ctx, 1)
		assert.ErrorIs(t, err, apperrors.ErrInternalServer)
	})
}

func TestServiceGetSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("recovers the rate from the stored totals", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("LoadBorrowers", ctx).Return([]Borrower{{
			BorrowerID: 1, PrincipalTotal: 1000, InterestTotal: 100,
			MonthsToPay: 10, LoanStartDate: date(2025, 1, 1),
		}}, nil).Once()
		repo.On("LoadPayments", ctx).Return([]Payment(nil), nil).Once()

		svc := newTestService(repo, nil, nil)
		schedule, err := svc.GetSchedule(ctx, 1)
		require.NoError(t, err)
		require.Len(t, schedule, 10)

		assert.Equal(t, 100.0, schedule[0].PrincipalDue)
		assert.Equal(t, 10.0, schedule[0].InterestDue)
		assert.Equal(t, date(2025, 1, 31), schedule[0].DueDate)
	})

	t.Run("zero principal yields a zero rate schedule", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("LoadBorrowers", ctx).Return([]Borrower{{
			BorrowerID: 1, PrincipalTotal: 0, InterestTotal: 0,
			MonthsToPay: 3, LoanStartDate: date(2025, 1, 1),
		}}, nil).Once()
		repo.On("LoadPayments", ctx).Return([]Payment(nil), nil).Once()

		svc := newTestService(repo, nil, nil)
		schedule, err := svc.GetSchedule(ctx, 1)
		require.NoError(t, err)
		require.Len(t, schedule, 3)
		assert.Zero(t, schedule[0].TotalDue)
	})
}

func TestServiceListBorrowers(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	repo.On("LoadBorrowers", ctx).Return([]Borrower{
		{BorrowerID: 1, PrincipalTotal: 1000, InterestTotal: 100},
		{BorrowerID: 2, PrincipalTotal: 500, InterestTotal: 25},
	}, nil).Once()
	repo.On("LoadPayments", ctx).Return([]Payment{
		{PaymentID: 1, BorrowerID: 2, PrincipalPaid: 500, InterestPaid: 25},
	}, nil).Once()

	svc := newTestService(repo, nil, nil)
	borrowers, err := svc.ListBorrowers(ctx)
	require.NoError(t, err)
	require.Len(t, borrowers, 2)

	assert.Equal(t, 1000.0, borrowers[0].PrincipalRemaining)
	assert.Zero(t, borrowers[1].PrincipalRemaining)
	assert.Zero(t, borrowers[1].InterestRemaining)
}
