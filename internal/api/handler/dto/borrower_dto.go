package dto

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"lending-ledger/internal/domain/ledger"
)

type CreateBorrowerRequest struct {
	Name         string  `json:"name"`
	Department   string  `json:"department"`
	Phone        string  `json:"phone"`
	Principal    float64 `json:"principal"`
	InterestRate float64 `json:"interestRate"`
	Months       int     `json:"months"`
	StartDate    string  `json:"startDate"`
}

func (r *CreateBorrowerRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Principal < 0 {
		return fmt.Errorf("principal must not be negative")
	}
	if r.InterestRate < 0 {
		return fmt.Errorf("interestRate must not be negative")
	}
	if r.Months < 1 {
		return fmt.Errorf("months must be at least 1")
	}
	if r.StartDate != "" {
		if _, err := time.Parse(ledger.DateLayout, r.StartDate); err != nil {
			return fmt.Errorf("invalid startDate format (use YYYY-MM-DD): %w", err)
		}
	}
	return nil
}

// ParsedStartDate returns the zero time when no start date was supplied;
// Validate must have been called first.
func (r *CreateBorrowerRequest) ParsedStartDate() time.Time {
	if r.StartDate == "" {
		return time.Time{}
	}
	t, _ := time.Parse(ledger.DateLayout, r.StartDate)
	return t
}

// RecordPaymentRequest carries the two payment amounts as decimal strings; an
// omitted amount counts as zero.
type RecordPaymentRequest struct {
	PrincipalPaid string `json:"principalPaid"`
	InterestPaid  string `json:"interestPaid"`
}

func (r *RecordPaymentRequest) Validate() error {
	if r.PrincipalPaid == "" && r.InterestPaid == "" {
		return fmt.Errorf("at least one of principalPaid or interestPaid is required")
	}
	for field, raw := range map[string]string{"principalPaid": r.PrincipalPaid, "interestPaid": r.InterestPaid} {
		if raw == "" {
			continue
		}
		if _, err := decimal.NewFromString(raw); err != nil {
			return fmt.Errorf("invalid %s amount: %w", field, err)
		}
	}
	return nil
}

// Amounts converts the validated request into float amounts.
func (r *RecordPaymentRequest) Amounts() (principal, interest float64, err error) {
	principal, err = parseAmount(r.PrincipalPaid)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid principalPaid amount: %w", err)
	}
	interest, err = parseAmount(r.InterestPaid)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid interestPaid amount: %w", err)
	}
	return principal, interest, nil
}

func parseAmount(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}

type BorrowerResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Department         string `json:"department,omitempty"`
	Phone              string `json:"phone,omitempty"`
	PrincipalTotal     string `json:"principalTotal"`
	InterestTotal      string `json:"interestTotal"`
	LoanStartDate      string `json:"loanStartDate,omitempty"`
	MonthsToPay        int    `json:"monthsToPay"`
	PrincipalRemaining string `json:"principalRemaining"`
	InterestRemaining  string `json:"interestRemaining"`
}

type ScheduleEntryResponse struct {
	Month        int    `json:"month"`
	DueDate      string `json:"dueDate"`
	PrincipalDue string `json:"principalDue"`
	InterestDue  string `json:"interestDue"`
	TotalDue     string `json:"totalDue"`
}

type PaymentResponse struct {
	ID            string `json:"id"`
	BorrowerID    string `json:"borrowerId"`
	Date          string `json:"date,omitempty"`
	PrincipalPaid string `json:"principalPaid"`
	InterestPaid  string `json:"interestPaid"`
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type TokenRequest struct {
	Username string `json:"username"`
}

func NewBorrowerResponse(b *ledger.Borrower) BorrowerResponse {
	return BorrowerResponse{
		ID:                 strconv.FormatInt(b.BorrowerID, 10),
		Name:               b.Name,
		Department:         b.Department,
		Phone:              b.Phone,
		PrincipalTotal:     formatMoney(b.PrincipalTotal),
		InterestTotal:      formatMoney(b.InterestTotal),
		LoanStartDate:      formatDate(b.LoanStartDate),
		MonthsToPay:        b.MonthsToPay,
		PrincipalRemaining: formatMoney(b.PrincipalRemaining),
		InterestRemaining:  formatMoney(b.InterestRemaining),
	}
}

func NewBorrowerListResponse(borrowers []ledger.Borrower) []BorrowerResponse {
	out := make([]BorrowerResponse, len(borrowers))
	for i := range borrowers {
		out[i] = NewBorrowerResponse(&borrowers[i])
	}
	return out
}

func NewScheduleResponse(schedule []ledger.ScheduleEntry) []ScheduleEntryResponse {
	out := make([]ScheduleEntryResponse, len(schedule))
	for i, entry := range schedule {
		out[i] = ScheduleEntryResponse{
			Month:        entry.Month,
			DueDate:      formatDate(entry.DueDate),
			PrincipalDue: formatMoney(entry.PrincipalDue),
			InterestDue:  formatMoney(entry.InterestDue),
			TotalDue:     formatMoney(entry.TotalDue),
		}
	}
	return out
}

func NewPaymentResponse(p *ledger.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            strconv.FormatInt(p.PaymentID, 10),
		BorrowerID:    strconv.FormatInt(p.BorrowerID, 10),
		Date:          formatDate(p.Date),
		PrincipalPaid: formatMoney(p.PrincipalPaid),
		InterestPaid:  formatMoney(p.InterestPaid),
	}
}

func formatMoney(m ledger.Money) string {
	return decimal.NewFromFloat(float64(m)).StringFixed(2)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(ledger.DateLayout)
}
