package ledger

import "time"

// Payment is one row of the payment table. Rows are append-only: the engine
// never edits or deletes a recorded payment. A zero Date marks a row whose
// source date could not be parsed; such rows still count toward balances but
// are excluded from date-filtered reports.
type Payment struct {
	PaymentID     int64
	BorrowerID    int64
	Date          time.Time
	PrincipalPaid Money
	InterestPaid  Money
}

// AppendPayment adds a new payment row and returns the extended table. Both
// amounts may be zero, and no check is made against the borrower's remaining
// balance; refusing an overpayment is an input-collection concern upstream.
// The referenced borrower is not verified to exist: an orphaned payment stays
// in the table and simply never matches any borrower's balance filter.
func AppendPayment(payments []Payment, borrowerID int64, principalPaid, interestPaid Money, date time.Time) []Payment {
	row := Payment{
		PaymentID:     NextPaymentID(payments),
		BorrowerID:    borrowerID,
		Date:          date,
		PrincipalPaid: principalPaid,
		InterestPaid:  interestPaid,
	}

	out := make([]Payment, 0, len(payments)+1)
	out = append(out, payments...)
	return append(out, row)
}
