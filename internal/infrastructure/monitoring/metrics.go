package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	BorrowersCreatedTotal *prometheus.CounterVec
	PaymentsRecordedTotal *prometheus.CounterVec
	ReportExportsTotal    *prometheus.CounterVec
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lending_ledger_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		BorrowersCreatedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lending_ledger_borrowers_created_total",
				Help: "Total number of borrower creation attempts by outcome.",
			},
			[]string{"status"},
		),
		PaymentsRecordedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lending_ledger_payments_recorded_total",
				Help: "Total number of payment recording attempts by outcome.",
			},
			[]string{"status"},
		),
		ReportExportsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lending_ledger_report_exports_total",
				Help: "Total number of report exports by format.",
			},
			[]string{"format"},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordBorrowerCreated(status string) {
	Business.BorrowersCreatedTotal.WithLabelValues(status).Inc()
}

func RecordPayment(status string) {
	Business.PaymentsRecordedTotal.WithLabelValues(status).Inc()
}

func RecordReportExport(format string) {
	Business.ReportExportsTotal.WithLabelValues(format).Inc()
}
