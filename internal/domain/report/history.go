package report

import (
	"sort"

	"lending-ledger/internal/domain/ledger"
)

// PaymentView is a payment row annotated with the combined amount paid.
type PaymentView struct {
	ledger.Payment
	TotalPaid ledger.Money
}

// PaymentHistory returns the borrower's payments most recent first, each
// annotated with total_paid = principal_paid + interest_paid. A borrower with
// no payments yields an empty slice, not an error.
func PaymentHistory(borrowerID int64, payments []ledger.Payment) []PaymentView {
	history := make([]PaymentView, 0)
	for _, p := range payments {
		if p.BorrowerID != borrowerID {
			continue
		}
		history = append(history, PaymentView{
			Payment:   p,
			TotalPaid: p.PrincipalPaid + p.InterestPaid,
		})
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date.After(history[j].Date)
	})

	return history
}
