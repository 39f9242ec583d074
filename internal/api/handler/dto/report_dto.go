package dto

import (
	"fmt"
	"strconv"

	"lending-ledger/internal/domain/report"
)

type MonthlySummaryResponse struct {
	Period               string `json:"period"`
	PrincipalCollected   string `json:"principalCollected"`
	InterestCollected    string `json:"interestCollected"`
	TotalCollected       string `json:"totalCollected"`
	Profit               string `json:"profit"`
	NumPayments          int    `json:"numPayments"`
	OutstandingPrincipal string `json:"outstandingPrincipal"`
	OutstandingInterest  string `json:"outstandingInterest"`
}

type DashboardResponse struct {
	TotalLoans           int     `json:"totalLoans"`
	ActiveLoans          int     `json:"activeLoans"`
	PrincipalOutstanding string  `json:"principalOutstanding"`
	InterestOutstanding  string  `json:"interestOutstanding"`
	TotalOutstanding     string  `json:"totalOutstanding"`
	CollectionRate       float64 `json:"collectionRate"`
}

type PendingBalanceResponse struct {
	BorrowerID         string `json:"borrowerId"`
	Name               string `json:"name"`
	Department         string `json:"department,omitempty"`
	PrincipalRemaining string `json:"principalRemaining"`
	InterestRemaining  string `json:"interestRemaining"`
	TotalPending       string `json:"totalPending"`
}

type PaymentHistoryResponse struct {
	PaymentResponse
	TotalPaid string `json:"totalPaid"`
}

func NewMonthlySummaryResponse(s *report.Summary) MonthlySummaryResponse {
	return MonthlySummaryResponse{
		Period:               fmt.Sprintf("%04d-%02d", s.Year, int(s.Month)),
		PrincipalCollected:   formatMoney(s.PrincipalIncome),
		InterestCollected:    formatMoney(s.InterestIncome),
		TotalCollected:       formatMoney(s.TotalCollected),
		Profit:               formatMoney(s.Profit),
		NumPayments:          s.NumPayments,
		OutstandingPrincipal: formatMoney(s.OutstandingPrincipal),
		OutstandingInterest:  formatMoney(s.OutstandingInterest),
	}
}

func NewDashboardResponse(st *report.Stats) DashboardResponse {
	return DashboardResponse{
		TotalLoans:           st.TotalLoans,
		ActiveLoans:          st.ActiveLoans,
		PrincipalOutstanding: formatMoney(st.PrincipalOutstanding),
		InterestOutstanding:  formatMoney(st.InterestOutstanding),
		TotalOutstanding:     formatMoney(st.TotalOutstanding),
		CollectionRate:       st.CollectionRate,
	}
}

func NewPendingBalancesResponse(pending []report.PendingBalance) []PendingBalanceResponse {
	out := make([]PendingBalanceResponse, len(pending))
	for i, row := range pending {
		out[i] = PendingBalanceResponse{
			BorrowerID:         strconv.FormatInt(row.BorrowerID, 10),
			Name:               row.Name,
			Department:         row.Department,
			PrincipalRemaining: formatMoney(row.PrincipalRemaining),
			InterestRemaining:  formatMoney(row.InterestRemaining),
			TotalPending:       formatMoney(row.TotalPending),
		}
	}
	return out
}

func NewPaymentHistoryResponse(history []report.PaymentView) []PaymentHistoryResponse {
	out := make([]PaymentHistoryResponse, len(history))
	for i, view := range history {
		out[i] = PaymentHistoryResponse{
			PaymentResponse: NewPaymentResponse(&view.Payment),
			TotalPaid:       formatMoney(view.TotalPaid),
		}
	}
	return out
}
