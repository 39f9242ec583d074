package ledger

import "time"

type Money = float64

// DateLayout is the wire format for every calendar date in the ledger tables.
const DateLayout = "2006-01-02"

// Borrower is one row of the borrower table. PrincipalRemaining and
// InterestRemaining are derived fields: they are recomputed from the payment
// table by RecomputeBalances and are never treated as authoritative inputs.
type Borrower struct {
	BorrowerID         int64
	Name               string
	Department         string
	Phone              string
	PrincipalTotal     Money
	InterestTotal      Money
	LoanStartDate      time.Time
	MonthsToPay        int
	PrincipalRemaining Money
	InterestRemaining  Money
}

// AppendBorrower adds a new borrower row and returns the extended table.
// The interest total is fixed at creation as principal * interestRate, the
// rate given as a fraction (0.10 for 10%). Remaining balances start equal to
// the totals since no payments exist yet. Input range validation (months >= 1,
// non-negative amounts) is the caller's responsibility.
func AppendBorrower(borrowers []Borrower, name, department, phone string, principal, interestRate Money, startDate time.Time, months int) []Borrower {
	interestTotal := principal * interestRate

	row := Borrower{
		BorrowerID:         NextBorrowerID(borrowers),
		Name:               name,
		Department:         department,
		Phone:              phone,
		PrincipalTotal:     principal,
		InterestTotal:      interestTotal,
		LoanStartDate:      startDate,
		MonthsToPay:        months,
		PrincipalRemaining: principal,
		InterestRemaining:  interestTotal,
	}

	out := make([]Borrower, 0, len(borrowers)+1)
	out = append(out, borrowers...)
	return append(out, row)
}

// FindBorrower returns the borrower row with the given ID, or false when no
// row matches.
func FindBorrower(borrowers []Borrower, borrowerID int64) (Borrower, bool) {
	for _, b := range borrowers {
		if b.BorrowerID == borrowerID {
			return b, true
		}
	}
	return Borrower{}, false
}
