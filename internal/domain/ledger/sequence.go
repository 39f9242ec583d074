package ledger

// ID assignment follows the backing tables, not a database sequence: the next
// ID is max(existing) + 1, or 1 for an empty table. Monotonic only under the
// single-writer usage the engine assumes.

func NextBorrowerID(borrowers []Borrower) int64 {
	var max int64
	for _, b := range borrowers {
		if b.BorrowerID > max {
			max = b.BorrowerID
		}
	}
	return max + 1
}

func NextPaymentID(payments []Payment) int64 {
	var max int64
	for _, p := range payments {
		if p.PaymentID > max {
			max = p.PaymentID
		}
	}
	return max + 1
}
