package ledger

import (
	"fmt"
	"time"

	"lending-ledger/internal/pkg/apperrors"
)

// ScheduleEntry is one projected installment of a flat-interest repayment
// schedule. Entries are 1-indexed by month.
type ScheduleEntry struct {
	Month        int
	DueDate      time.Time
	PrincipalDue Money
	InterestDue  Money
	TotalDue     Money
}

// BuildSchedule projects a flat (simple) interest repayment schedule: the
// principal and the total interest (principal * interestRate) are each split
// evenly across the term, producing exactly months entries. Due dates use a
// fixed 30-day month approximation (startDate + 30*month days), not calendar
// month arithmetic. The function is pure; the schedule is recomputable from
// the same inputs at any time.
//
// A term of zero or fewer months is the division-by-zero fault of the flat
// split and is rejected with ErrInvalidTerm; callers enforce months >= 1 at
// borrower creation.
func BuildSchedule(principal, interestRate Money, months int, startDate time.Time) ([]ScheduleEntry, error) {
	if months <= 0 {
		return nil, fmt.Errorf("%w: got %d", apperrors.ErrInvalidTerm, months)
	}

	monthlyPrincipal := principal / Money(months)
	monthlyInterest := (principal * interestRate) / Money(months)

	schedule := make([]ScheduleEntry, 0, months)
	for month := 1; month <= months; month++ {
		schedule = append(schedule, ScheduleEntry{
			Month:        month,
			DueDate:      startDate.AddDate(0, 0, 30*month),
			PrincipalDue: monthlyPrincipal,
			InterestDue:  monthlyInterest,
			TotalDue:     monthlyPrincipal + monthlyInterest,
		})
	}
	return schedule, nil
}
