package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"lending-ledger/internal/api/handler/dto"
	"lending-ledger/internal/domain/ledger"
	"lending-ledger/internal/domain/report"
	"lending-ledger/internal/pkg/apperrors"
)

type BorrowerHandler struct {
	service ledger.Service
	reports report.Service
	logger  *slog.Logger
}

func NewBorrowerHandler(s ledger.Service, r report.Service, l *slog.Logger) *BorrowerHandler {
	return &BorrowerHandler{
		service: s,
		reports: r,
		logger:  l.With("component", "BorrowerHandler"),
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	status, message, field := http.StatusInternalServerError, "An unexpected error occurred.", ""
	var validationError *apperrors.ValidationError
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, "Resource not found."
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrInvalidPaymentAmount), errors.Is(err, apperrors.ErrInvalidTerm):
		status, message = http.StatusBadRequest, err.Error()
	case errors.As(err, &validationError):
		status, message, field = http.StatusBadRequest, validationError.Message, validationError.Field
	case errors.As(err, &appErr):
		message = appErr.Error()
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

func getBorrowerIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "borrowerID")
	if idStr == "" {
		return 0, fmt.Errorf("borrowerID not found in URL path")
	}
	return strconv.ParseInt(idStr, 10, 64)
}

// CreateBorrower registers a new borrower with a loan.
//
// @Summary Create a new borrower
// @Description Registers a borrower with a flat-interest loan. The interest total is fixed at creation as principal * interestRate and both remaining balances start at their totals.
// @Tags Borrowers
// @Accept json
// @Produce json
// @Param request body dto.CreateBorrowerRequest true "Borrower creation request payload"
// @Success 201 {object} dto.BorrowerResponse "Borrower successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or validation error"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /borrowers [post]
// @Security BearerAuth
func (h *BorrowerHandler) CreateBorrower(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBorrowerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	created, err := h.service.CreateBorrower(r.Context(), ledger.CreateBorrowerParams{
		Name:         req.Name,
		Department:   req.Department,
		Phone:        req.Phone,
		Principal:    req.Principal,
		InterestRate: req.InterestRate,
		StartDate:    req.ParsedStartDate(),
		Months:       req.Months,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewBorrowerResponse(created))
}

// ListBorrowers returns every borrower with current balances.
//
// @Summary List borrowers
// @Description Lists the full borrower table with remaining balances recomputed from the payment history.
// @Tags Borrowers
// @Produce json
// @Success 200 {array} dto.BorrowerResponse "Borrowers successfully listed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /borrowers [get]
// @Security BearerAuth
func (h *BorrowerHandler) ListBorrowers(w http.ResponseWriter, r *http.Request) {
	borrowers, err := h.service.ListBorrowers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewBorrowerListResponse(borrowers))
}

// GetBorrower retrieves one borrower by ID.
//
// @Summary Retrieve borrower details
// @Description Retrieves a borrower with remaining balances recomputed from the payment history.
// @Tags Borrowers
// @Produce json
// @Param borrowerID path int true "Borrower ID"
// @Success 200 {object} dto.BorrowerResponse "Borrower details successfully retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid borrower ID"
// @Failure 404 {object} dto.ErrorResponse "Borrower not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /borrowers/{borrowerID} [get]
// @Security BearerAuth
func (h *BorrowerHandler) GetBorrower(w http.ResponseWriter, r *http.Request) {
	borrowerID, err := getBorrowerIDFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	borrower, err := h.service.GetBorrower(r.Context(), borrowerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewBorrowerResponse(borrower))
}

// GetSchedule projects the borrower's repayment schedule.
//
// @Summary Retrieve repayment schedule
// @Description Projects the borrower's flat-interest repayment schedule, one entry per month of the term with due dates advancing by thirty days.
// @Tags Borrowers
// @Produce json
// @Param borrowerID path int true "Borrower ID"
// @Success 200 {array} dto.ScheduleEntryResponse "Schedule successfully projected"
// @Failure 400 {object} dto.ErrorResponse "Invalid borrower ID"
// @Failure 404 {object} dto.ErrorResponse "Borrower not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /borrowers/{borrowerID}/schedule [get]
// @Security BearerAuth
func (h *BorrowerHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	borrowerID, err := getBorrowerIDFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	schedule, err := h.service.GetSchedule(r.Context(), borrowerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewScheduleResponse(schedule))
}

// RecordPayment records a payment against a borrower.
//
// @Summary Record a payment
// @Description Records a payment split into principal and interest portions and recomputes the borrower's remaining balances. Amounts above the remaining balance are accepted and show as negative balances.
// @Tags Borrowers
// @Accept json
// @Produce json
// @Param borrowerID path int true "Borrower ID"
// @Param request body dto.RecordPaymentRequest true "Payment request payload"
// @Success 201 {object} dto.PaymentResponse "Payment successfully recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid borrower ID, request payload, or validation error"
// @Failure 404 {object} dto.ErrorResponse "Borrower not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /borrowers/{borrowerID}/payments [post]
// @Security BearerAuth
func (h *BorrowerHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	borrowerID, err := getBorrowerIDFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	var req dto.RecordPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	principal, interest, err := req.Amounts()
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	recorded, err := h.service.RecordPayment(r.Context(), borrowerID, principal, interest)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto.NewPaymentResponse(recorded))
}

// GetPaymentHistory lists the borrower's payments most recent first.
//
// @Summary Retrieve payment history
// @Description Lists the borrower's recorded payments most recent first, each annotated with the combined amount paid.
// @Tags Borrowers
// @Produce json
// @Param borrowerID path int true "Borrower ID"
// @Success 200 {array} dto.PaymentHistoryResponse "Payment history successfully retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid borrower ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /borrowers/{borrowerID}/payments [get]
// @Security BearerAuth
func (h *BorrowerHandler) GetPaymentHistory(w http.ResponseWriter, r *http.Request) {
	borrowerID, err := getBorrowerIDFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	history, err := h.reports.History(r.Context(), borrowerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewPaymentHistoryResponse(history))
}
