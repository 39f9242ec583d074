package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRecomputeBalances(t *testing.T) {
	borrowers := []Borrower{
		{BorrowerID: 1, Name: "Aminah", PrincipalTotal: 1000, InterestTotal: 100, PrincipalRemaining: 1000, InterestRemaining: 100},
		{BorrowerID: 2, Name: "Badrul", PrincipalTotal: 500, InterestTotal: 25, PrincipalRemaining: 500, InterestRemaining: 25},
	}

	t.Run("subtracts payment sums from the creation totals", func(t *testing.T) {
		payments := []Payment{
			{PaymentID: 1, BorrowerID: 1, Date: date(2025, 2, 15), PrincipalPaid: 400, InterestPaid: 50},
		}

		out := RecomputeBalances(borrowers, payments)
		require.Len(t, out, 2)

		assert.Equal(t, 600.0, out[0].PrincipalRemaining)
		assert.Equal(t, 50.0, out[0].InterestRemaining)
		assert.Equal(t, 500.0, out[1].PrincipalRemaining)
		assert.Equal(t, 25.0, out[1].InterestRemaining)
	})

	t.Run("is idempotent", func(t *testing.T) {
		payments := []Payment{
			{PaymentID: 1, BorrowerID: 1, PrincipalPaid: 400, InterestPaid: 50},
			{PaymentID: 2, BorrowerID: 2, PrincipalPaid: 100, InterestPaid: 5},
		}

		once := RecomputeBalances(borrowers, payments)
		twice := RecomputeBalances(once, payments)
		assert.Equal(t, once, twice)
	})

	t.Run("does not clamp overpaid balances at zero", func(t *testing.T) {
		payments := []Payment{
			{PaymentID: 1, BorrowerID: 2, PrincipalPaid: 600, InterestPaid: 30},
		}

		out := RecomputeBalances(borrowers, payments)
		assert.Equal(t, -100.0, out[1].PrincipalRemaining)
		assert.Equal(t, -5.0, out[1].InterestRemaining)
	})

	t.Run("ignores payments for unknown borrowers", func(t *testing.T) {
		payments := []Payment{
			{PaymentID: 1, BorrowerID: 99, PrincipalPaid: 1000, InterestPaid: 100},
		}

		out := RecomputeBalances(borrowers, payments)
		assert.Equal(t, 1000.0, out[0].PrincipalRemaining)
		assert.Equal(t, 500.0, out[1].PrincipalRemaining)
	})

	t.Run("resets balances when the payment table is empty", func(t *testing.T) {
		partPaid := []Borrower{
			{BorrowerID: 1, PrincipalTotal: 1000, InterestTotal: 100, PrincipalRemaining: 600, InterestRemaining: 50},
		}

		out := RecomputeBalances(partPaid, nil)
		assert.Equal(t, 1000.0, out[0].PrincipalRemaining)
		assert.Equal(t, 100.0, out[0].InterestRemaining)
	})

	t.Run("empty borrower table passes through", func(t *testing.T) {
		out := RecomputeBalances(nil, []Payment{{PaymentID: 1, BorrowerID: 1, PrincipalPaid: 10}})
		assert.Empty(t, out)
	})

	t.Run("does not mutate its inputs", func(t *testing.T) {
		payments := []Payment{{PaymentID: 1, BorrowerID: 1, PrincipalPaid: 400, InterestPaid: 50}}

		_ = RecomputeBalances(borrowers, payments)
		assert.Equal(t, 1000.0, borrowers[0].PrincipalRemaining)
		assert.Equal(t, 100.0, borrowers[0].InterestRemaining)
	})
}
