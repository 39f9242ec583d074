package event

import "time"

// BorrowerCreatedEvent is emitted after a new borrower row has been saved.
type BorrowerCreatedEvent struct {
	BorrowerID     int64     `json:"borrowerId"`
	Name           string    `json:"name"`
	Department     string    `json:"department,omitempty"`
	PrincipalTotal float64   `json:"principalTotal"`
	InterestTotal  float64   `json:"interestTotal"`
	MonthsToPay    int       `json:"monthsToPay"`
	LoanStartDate  string    `json:"loanStartDate"`
	Timestamp      time.Time `json:"timestamp"`
}

// PaymentRecordedEvent is emitted after a payment row has been saved and the
// balances recomputed.
type PaymentRecordedEvent struct {
	PaymentID     int64     `json:"paymentId"`
	BorrowerID    int64     `json:"borrowerId"`
	Date          string    `json:"date"`
	PrincipalPaid float64   `json:"principalPaid"`
	InterestPaid  float64   `json:"interestPaid"`
	Timestamp     time.Time `json:"timestamp"`
}
