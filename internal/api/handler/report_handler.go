package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"lending-ledger/internal/api/handler/dto"
	"lending-ledger/internal/domain/report"
	"lending-ledger/internal/infrastructure/monitoring"
	"lending-ledger/internal/pkg/apperrors"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	service report.Service
	logger  *slog.Logger
}

func NewReportHandler(s report.Service, l *slog.Logger) *ReportHandler {
	return &ReportHandler{
		service: s,
		logger:  l.With("component", "ReportHandler"),
	}
}

// reportPeriod reads the month and year query parameters, defaulting to the
// current calendar month.
func reportPeriod(r *http.Request) (time.Month, int, error) {
	now := time.Now()
	month, year := now.Month(), now.Year()

	if raw := r.URL.Query().Get("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, fmt.Errorf("month must be a number between 1 and 12")
		}
		month = time.Month(m)
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1 {
			return 0, 0, fmt.Errorf("year must be a positive number")
		}
		year = y
	}
	return month, year, nil
}

// GetMonthlySummary aggregates the collections for one calendar month.
//
// @Summary Retrieve monthly collection summary
// @Description Aggregates payments recorded in the given month and year plus the portfolio-wide outstanding balances. Defaults to the current month.
// @Tags Reports
// @Produce json
// @Param month query int false "Report month (1-12), defaults to current"
// @Param year query int false "Report year, defaults to current"
// @Success 200 {object} dto.MonthlySummaryResponse "Summary successfully computed"
// @Failure 400 {object} dto.ErrorResponse "Invalid month or year"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/monthly [get]
// @Security BearerAuth
func (h *ReportHandler) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	month, year, err := reportPeriod(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	summary, err := h.service.Monthly(r.Context(), month, year)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewMonthlySummaryResponse(summary))
}

// GetDashboard rolls up the portfolio-wide dashboard metrics.
//
// @Summary Retrieve dashboard statistics
// @Description Rolls up loan counts, outstanding balances and the collection rate over the full borrower table.
// @Tags Reports
// @Produce json
// @Success 200 {object} dto.DashboardResponse "Statistics successfully computed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/dashboard [get]
// @Security BearerAuth
func (h *ReportHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Dashboard(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewDashboardResponse(stats))
}

// GetPendingBalances lists every borrower that still owes money.
//
// @Summary Retrieve pending balances
// @Description Lists borrowers with any remaining balance, sorted by total pending amount descending.
// @Tags Reports
// @Produce json
// @Success 200 {array} dto.PendingBalanceResponse "Pending balances successfully listed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/pending [get]
// @Security BearerAuth
func (h *ReportHandler) GetPendingBalances(w http.ResponseWriter, r *http.Request) {
	pending, err := h.service.Pending(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewPendingBalancesResponse(pending))
}

// ExportPendingBalances downloads the pending-balance report as a file.
//
// @Summary Export pending balances
// @Description Downloads the pending-balance report as a CSV or XLSX file named after the report period, e.g. loan_report_2025_02.csv.
// @Tags Reports
// @Produce text/csv
// @Param format query string false "Export format: csv (default) or xlsx"
// @Param month query int false "Report month (1-12), defaults to current"
// @Param year query int false "Report year, defaults to current"
// @Success 200 {file} file "Report file"
// @Failure 400 {object} dto.ErrorResponse "Invalid format, month or year"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/pending/export [get]
// @Security BearerAuth
func (h *ReportHandler) ExportPendingBalances(w http.ResponseWriter, r *http.Request) {
	month, year, err := reportPeriod(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		respondError(w, fmt.Errorf("%w: unsupported export format %q", apperrors.ErrInvalidArgument, format))
		return
	}

	pending, err := h.service.Pending(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	fileName := report.ExportFileName(year, month, format)

	switch format {
	case "csv":
		var buf bytes.Buffer
		if err := report.WritePendingCSV(&buf, pending); err != nil {
			respondError(w, err)
			return
		}
		monitoring.RecordReportExport("csv")
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())

	case "xlsx":
		summary, err := h.service.Monthly(r.Context(), month, year)
		if err != nil {
			respondError(w, err)
			return
		}
		data, err := report.BuildMonthlyWorkbook(*summary, pending)
		if err != nil {
			respondError(w, err)
			return
		}
		monitoring.RecordReportExport("xlsx")
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}

	h.logger.InfoContext(r.Context(), "Report exported", "format", format, "file", fileName, "rows", len(pending))
}
