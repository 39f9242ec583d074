package report

import (
	"sort"

	"lending-ledger/internal/domain/ledger"
)

// PendingBalance is one row of the pending-balance table backing the report
// export: a borrower that still owes principal, interest, or both.
type PendingBalance struct {
	BorrowerID         int64
	Name               string
	Department         string
	PrincipalRemaining ledger.Money
	InterestRemaining  ledger.Money
	TotalPending       ledger.Money
}

// PendingBalances lists the borrowers with any remaining balance, sorted by
// total pending amount descending. A fully collected portfolio yields an
// empty slice.
func PendingBalances(borrowers []ledger.Borrower) []PendingBalance {
	pending := make([]PendingBalance, 0)
	for _, b := range borrowers {
		if b.PrincipalRemaining <= 0 && b.InterestRemaining <= 0 {
			continue
		}
		pending = append(pending, PendingBalance{
			BorrowerID:         b.BorrowerID,
			Name:               b.Name,
			Department:         b.Department,
			PrincipalRemaining: b.PrincipalRemaining,
			InterestRemaining:  b.InterestRemaining,
			TotalPending:       b.PrincipalRemaining + b.InterestRemaining,
		})
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].TotalPending > pending[j].TotalPending
	})

	return pending
}
