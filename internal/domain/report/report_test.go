package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lending-ledger/internal/domain/ledger"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthlySummary(t *testing.T) {
	borrowers := []ledger.Borrower{
		{BorrowerID: 1, PrincipalRemaining: 600, InterestRemaining: 50},
		{BorrowerID: 2, PrincipalRemaining: 500, InterestRemaining: 25},
	}
	payments := []ledger.Payment{
		{PaymentID: 1, BorrowerID: 1, Date: date(2025, 2, 10), PrincipalPaid: 400, InterestPaid: 50},
		{PaymentID: 2, BorrowerID: 2, Date: date(2025, 2, 28), PrincipalPaid: 100, InterestPaid: 10},
		{PaymentID: 3, BorrowerID: 1, Date: date(2025, 3, 1), PrincipalPaid: 200, InterestPaid: 20},
		{PaymentID: 4, BorrowerID: 1, Date: date(2024, 2, 5), PrincipalPaid: 50, InterestPaid: 5},
	}

	t.Run("sums only payments in the requested month and year", func(t *testing.T) {
		s := MonthlySummary(payments, borrowers, time.February, 2025)

		assert.Equal(t, 500.0, s.PrincipalIncome)
		assert.Equal(t, 60.0, s.InterestIncome)
		assert.Equal(t, 560.0, s.TotalCollected)
		assert.Equal(t, 2, s.NumPayments)
		assert.Equal(t, 60.0, s.Profit)
	})

	t.Run("outstanding fields are portfolio wide", func(t *testing.T) {
		s := MonthlySummary(payments, borrowers, time.February, 2025)

		assert.Equal(t, 1100.0, s.OutstandingPrincipal)
		assert.Equal(t, 75.0, s.OutstandingInterest)
	})

	t.Run("excludes zero dated payments from the month filter", func(t *testing.T) {
		withUndated := append([]ledger.Payment{}, payments...)
		withUndated = append(withUndated, ledger.Payment{PaymentID: 5, BorrowerID: 1, PrincipalPaid: 999})

		s := MonthlySummary(withUndated, borrowers, time.February, 2025)
		assert.Equal(t, 500.0, s.PrincipalIncome)
		assert.Equal(t, 2, s.NumPayments)
	})

	t.Run("empty tables yield a zeroed summary", func(t *testing.T) {
		s := MonthlySummary(nil, nil, time.February, 2025)

		assert.Zero(t, s.TotalCollected)
		assert.Zero(t, s.NumPayments)
		assert.Zero(t, s.OutstandingPrincipal)
		assert.Equal(t, time.February, s.Month)
		assert.Equal(t, 2025, s.Year)
	})
}

func TestDashboardStats(t *testing.T) {
	t.Run("counts active loans and derives the collection rate", func(t *testing.T) {
		borrowers := []ledger.Borrower{
			{BorrowerID: 1, PrincipalTotal: 1000, InterestTotal: 100, PrincipalRemaining: 600, InterestRemaining: 50},
			{BorrowerID: 2, PrincipalTotal: 500, InterestTotal: 50, PrincipalRemaining: 0, InterestRemaining: 0},
		}

		st := DashboardStats(borrowers, nil)

		assert.Equal(t, 2, st.TotalLoans)
		assert.Equal(t, 1, st.ActiveLoans)
		assert.Equal(t, 600.0, st.PrincipalOutstanding)
		assert.Equal(t, 50.0, st.InterestOutstanding)
		assert.Equal(t, 650.0, st.TotalOutstanding)

		// collected = 1650 - 650 of an expected 1650
		assert.InDelta(t, 1000.0/1650.0*100, st.CollectionRate, 1e-9)
	})

	t.Run("empty portfolio reports a zero rate", func(t *testing.T) {
		st := DashboardStats(nil, nil)

		assert.Zero(t, st.TotalLoans)
		assert.Zero(t, st.ActiveLoans)
		assert.Zero(t, st.CollectionRate)
	})

	t.Run("overpaid loan is not active", func(t *testing.T) {
		borrowers := []ledger.Borrower{
			{BorrowerID: 1, PrincipalTotal: 100, InterestTotal: 10, PrincipalRemaining: -20, InterestRemaining: 0},
		}

		st := DashboardStats(borrowers, nil)
		assert.Zero(t, st.ActiveLoans)
		assert.Equal(t, -20.0, st.TotalOutstanding)
	})
}

func TestPendingBalances(t *testing.T) {
	t.Run("filters settled borrowers and sorts by total pending descending", func(t *testing.T) {
		borrowers := []ledger.Borrower{
			{BorrowerID: 1, Name: "small", PrincipalRemaining: 100, InterestRemaining: 10},
			{BorrowerID: 2, Name: "settled", PrincipalRemaining: 0, InterestRemaining: 0},
			{BorrowerID: 3, Name: "big", PrincipalRemaining: 900, InterestRemaining: 90},
			{BorrowerID: 4, Name: "interest-only", PrincipalRemaining: 0, InterestRemaining: 5},
		}

		pending := PendingBalances(borrowers)
		require.Len(t, pending, 3)

		assert.Equal(t, "big", pending[0].Name)
		assert.Equal(t, 990.0, pending[0].TotalPending)
		assert.Equal(t, "small", pending[1].Name)
		assert.Equal(t, "interest-only", pending[2].Name)
	})

	t.Run("fully collected portfolio yields empty slice", func(t *testing.T) {
		borrowers := []ledger.Borrower{
			{BorrowerID: 1, PrincipalRemaining: 0, InterestRemaining: 0},
			{BorrowerID: 2, PrincipalRemaining: -50, InterestRemaining: 0},
		}

		pending := PendingBalances(borrowers)
		assert.NotNil(t, pending)
		assert.Empty(t, pending)
	})
}

func TestPaymentHistory(t *testing.T) {
	payments := []ledger.Payment{
		{PaymentID: 1, BorrowerID: 1, Date: date(2025, 1, 10), PrincipalPaid: 100, InterestPaid: 10},
		{PaymentID: 2, BorrowerID: 2, Date: date(2025, 1, 15), PrincipalPaid: 50, InterestPaid: 5},
		{PaymentID: 3, BorrowerID: 1, Date: date(2025, 3, 1), PrincipalPaid: 200, InterestPaid: 20},
	}

	t.Run("most recent first with total paid annotation", func(t *testing.T) {
		history := PaymentHistory(1, payments)
		require.Len(t, history, 2)

		assert.Equal(t, int64(3), history[0].PaymentID)
		assert.Equal(t, 220.0, history[0].TotalPaid)
		assert.Equal(t, int64(1), history[1].PaymentID)
		assert.Equal(t, 110.0, history[1].TotalPaid)
	})

	t.Run("no payments yields empty slice", func(t *testing.T) {
		history := PaymentHistory(99, payments)
		assert.NotNil(t, history)
		assert.Empty(t, history)
	})
}
