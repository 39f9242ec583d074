package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lending-ledger/internal/pkg/apperrors"
)

func TestBuildSchedule(t *testing.T) {
	t.Run("splits principal and interest evenly across the term", func(t *testing.T) {
		schedule, err := BuildSchedule(1000, 0.10, 10, date(2025, 1, 1))
		require.NoError(t, err)
		require.Len(t, schedule, 10)

		first := schedule[0]
		assert.Equal(t, 1, first.Month)
		assert.Equal(t, date(2025, 1, 31), first.DueDate)
		assert.Equal(t, 100.0, first.PrincipalDue)
		assert.Equal(t, 10.0, first.InterestDue)
		assert.Equal(t, 110.0, first.TotalDue)

		last := schedule[9]
		assert.Equal(t, 10, last.Month)
		assert.Equal(t, date(2025, 1, 1).AddDate(0, 0, 300), last.DueDate)
	})

	t.Run("due dates advance by a fixed thirty days", func(t *testing.T) {
		schedule, err := BuildSchedule(300, 0.05, 3, date(2025, 3, 15))
		require.NoError(t, err)

		assert.Equal(t, date(2025, 4, 14), schedule[0].DueDate)
		assert.Equal(t, date(2025, 5, 14), schedule[1].DueDate)
		assert.Equal(t, date(2025, 6, 13), schedule[2].DueDate)
	})

	t.Run("installments sum back to the loan totals", func(t *testing.T) {
		principal, rate := 997.0, 0.07
		schedule, err := BuildSchedule(principal, rate, 7, date(2025, 1, 1))
		require.NoError(t, err)

		var sumPrincipal, sumInterest float64
		for _, entry := range schedule {
			sumPrincipal += entry.PrincipalDue
			sumInterest += entry.InterestDue
		}
		assert.InDelta(t, principal, sumPrincipal, 1e-9)
		assert.InDelta(t, principal*rate, sumInterest, 1e-9)
	})

	t.Run("zero rate yields zero interest installments", func(t *testing.T) {
		schedule, err := BuildSchedule(600, 0, 6, date(2025, 1, 1))
		require.NoError(t, err)

		for _, entry := range schedule {
			assert.Zero(t, entry.InterestDue)
			assert.Equal(t, entry.PrincipalDue, entry.TotalDue)
		}
	})

	t.Run("rejects a non-positive term", func(t *testing.T) {
		for _, months := range []int{0, -1} {
			_, err := BuildSchedule(1000, 0.10, months, date(2025, 1, 1))
			assert.ErrorIs(t, err, apperrors.ErrInvalidTerm)
		}
	})

	t.Run("single month term collects everything at once", func(t *testing.T) {
		schedule, err := BuildSchedule(1000, 0.10, 1, date(2025, 1, 1))
		require.NoError(t, err)
		require.Len(t, schedule, 1)

		assert.Equal(t, 1000.0, schedule[0].PrincipalDue)
		assert.Equal(t, 100.0, schedule[0].InterestDue)
		assert.False(t, math.Signbit(schedule[0].TotalDue))
	})
}
