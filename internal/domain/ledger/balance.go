package ledger

// RecomputeBalances derives every borrower's remaining balances from the full
// payment history and returns a new borrower table; the inputs are not
// mutated. For each borrower the matching payments are summed and
//
//	principal_remaining = principal_total - sum(principal_paid)
//	interest_remaining  = interest_total  - sum(interest_paid)
//
// Remaining balances are not clamped at zero: an overpaid borrower shows a
// negative balance. The operation is idempotent since the remaining fields
// are overwritten, never incremented. An empty borrower table comes back
// unchanged.
func RecomputeBalances(borrowers []Borrower, payments []Payment) []Borrower {
	if len(borrowers) == 0 {
		return borrowers
	}

	type paid struct {
		principal Money
		interest  Money
	}
	sums := make(map[int64]paid, len(borrowers))
	for _, p := range payments {
		s := sums[p.BorrowerID]
		s.principal += p.PrincipalPaid
		s.interest += p.InterestPaid
		sums[p.BorrowerID] = s
	}

	out := make([]Borrower, len(borrowers))
	for i, b := range borrowers {
		s := sums[b.BorrowerID]
		b.PrincipalRemaining = b.PrincipalTotal - s.principal
		b.InterestRemaining = b.InterestTotal - s.interest
		out[i] = b
	}
	return out
}
