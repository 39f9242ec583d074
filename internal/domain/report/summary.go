package report

import (
	"time"

	"lending-ledger/internal/domain/ledger"
)

// Summary is the collection report for one calendar month. Income fields are
// month-scoped; the outstanding fields are portfolio-wide snapshots of the
// borrowers' current remaining balances. Profit is defined as the interest
// collected in the period, with no cost basis subtracted.
type Summary struct {
	Month                time.Month
	Year                 int
	InterestIncome       ledger.Money
	PrincipalIncome      ledger.Money
	TotalCollected       ledger.Money
	NumPayments          int
	OutstandingInterest  ledger.Money
	OutstandingPrincipal ledger.Money
	Profit               ledger.Money
}

// MonthlySummary aggregates the payments dated within the given month and
// year. Payments with a zero date (unparseable at the load boundary) are
// excluded from the month filter. Empty tables yield zeroed fields, not an
// error.
func MonthlySummary(payments []ledger.Payment, borrowers []ledger.Borrower, month time.Month, year int) Summary {
	s := Summary{Month: month, Year: year}

	for _, p := range payments {
		if p.Date.IsZero() {
			continue
		}
		if p.Date.Month() != month || p.Date.Year() != year {
			continue
		}
		s.InterestIncome += p.InterestPaid
		s.PrincipalIncome += p.PrincipalPaid
		s.NumPayments++
	}
	s.TotalCollected = s.InterestIncome + s.PrincipalIncome
	s.Profit = s.InterestIncome

	for _, b := range borrowers {
		s.OutstandingInterest += b.InterestRemaining
		s.OutstandingPrincipal += b.PrincipalRemaining
	}

	return s
}
