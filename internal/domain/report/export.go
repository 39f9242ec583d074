package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"lending-ledger/internal/domain/ledger"
)

var pendingColumns = []string{"name", "department", "principal_remaining", "interest_remaining", "total_pending"}

// ExportFileName names a report artifact after its period, e.g.
// loan_report_2025_02.csv.
func ExportFileName(year int, month time.Month, ext string) string {
	return fmt.Sprintf("loan_report_%04d_%02d.%s", year, int(month), ext)
}

// WritePendingCSV renders the pending-balance table as CSV, one row per
// borrower with a remaining balance, amounts fixed to two decimal places.
func WritePendingCSV(w io.Writer, pending []PendingBalance) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(pendingColumns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range pending {
		record := []string{
			row.Name,
			row.Department,
			formatAmount(row.PrincipalRemaining),
			formatAmount(row.InterestRemaining),
			formatAmount(row.TotalPending),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// BuildMonthlyWorkbook renders the monthly report as an XLSX workbook with a
// Summary sheet and a Pending Balances sheet, returned as the serialized file
// bytes ready for upload.
func BuildMonthlyWorkbook(summary Summary, pending []PendingBalance) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "Summary"
	f.SetSheetName(f.GetSheetName(0), summarySheet)

	summaryRows := [][]interface{}{
		{"period", fmt.Sprintf("%04d-%02d", summary.Year, int(summary.Month))},
		{"payments_recorded", summary.NumPayments},
		{"principal_collected", float64(summary.PrincipalIncome)},
		{"interest_collected", float64(summary.InterestIncome)},
		{"total_collected", float64(summary.TotalCollected)},
		{"profit", float64(summary.Profit)},
		{"outstanding_principal", float64(summary.OutstandingPrincipal)},
		{"outstanding_interest", float64(summary.OutstandingInterest)},
	}
	for rowIdx, row := range summaryRows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err := f.SetCellValue(summarySheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to fill summary sheet: %w", err)
			}
		}
	}

	pendingSheet := "Pending Balances"
	if _, err := f.NewSheet(pendingSheet); err != nil {
		return nil, fmt.Errorf("failed to create pending sheet: %w", err)
	}
	for colIdx, header := range pendingColumns {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err := f.SetCellValue(pendingSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write pending header: %w", err)
		}
	}
	for rowIdx, row := range pending {
		values := []interface{}{
			row.Name,
			row.Department,
			float64(row.PrincipalRemaining),
			float64(row.InterestRemaining),
			float64(row.TotalPending),
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(pendingSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to fill pending sheet: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func formatAmount(m ledger.Money) string {
	return strconv.FormatFloat(float64(m), 'f', 2, 64)
}
