package report

import "lending-ledger/internal/domain/ledger"

// Stats is the portfolio-wide dashboard roll-up.
type Stats struct {
	TotalLoans           int
	ActiveLoans          int
	PrincipalOutstanding ledger.Money
	InterestOutstanding  ledger.Money
	TotalOutstanding     ledger.Money
	CollectionRate       float64
}

// DashboardStats computes the dashboard metrics over the full borrower table.
// A loan counts as active while its principal remaining is above zero. The
// collection rate is the collected share of the total expected (principal
// plus interest) as a percentage, defined as 0 for an empty portfolio or a
// zero expected total.
func DashboardStats(borrowers []ledger.Borrower, payments []ledger.Payment) Stats {
	st := Stats{TotalLoans: len(borrowers)}

	var totalExpected ledger.Money
	for _, b := range borrowers {
		if b.PrincipalRemaining > 0 {
			st.ActiveLoans++
		}
		st.PrincipalOutstanding += b.PrincipalRemaining
		st.InterestOutstanding += b.InterestRemaining
		totalExpected += b.PrincipalTotal + b.InterestTotal
	}
	st.TotalOutstanding = st.PrincipalOutstanding + st.InterestOutstanding

	if totalExpected > 0 {
		st.CollectionRate = float64((totalExpected - st.TotalOutstanding) / totalExpected * 100)
	}

	return st
}
