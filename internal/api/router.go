package api

import (
	"log/slog"
	"net/http"
	"time"

	"lending-ledger/internal/api/handler"
	mw "lending-ledger/internal/api/middleware"
	"lending-ledger/internal/config"
	"lending-ledger/internal/domain/ledger"
	"lending-ledger/internal/domain/report"

	_ "lending-ledger/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func SetupRouter(ledgerService ledger.Service, reportService report.Service, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupBorrowerRoutes(router, ledgerService, reportService, cfg, logger)
	setupReportRoutes(router, reportService, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupBorrowerRoutes(router *chi.Mux, ledgerService ledger.Service, reportService report.Service, cfg *config.Config, logger *slog.Logger) {
	borrowerHandler := handler.NewBorrowerHandler(ledgerService, reportService, logger)
	authHandler := handler.NewAuthHandler(*cfg, logger)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})

	router.Route("/borrowers", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", borrowerHandler.CreateBorrower)
		r.Get("/", borrowerHandler.ListBorrowers)
		r.Route("/{borrowerID}", func(r chi.Router) {
			r.Get("/", borrowerHandler.GetBorrower)
			r.Get("/schedule", borrowerHandler.GetSchedule)
			r.Get("/payments", borrowerHandler.GetPaymentHistory)
			r.Post("/payments", borrowerHandler.RecordPayment)
		})
	})
}

func setupReportRoutes(router *chi.Mux, reportService report.Service, cfg *config.Config, logger *slog.Logger) {
	reportHandler := handler.NewReportHandler(reportService, logger)

	router.Route("/reports", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Get("/monthly", reportHandler.GetMonthlySummary)
		r.Get("/dashboard", reportHandler.GetDashboard)
		r.Get("/pending", reportHandler.GetPendingBalances)
		r.Get("/pending/export", reportHandler.ExportPendingBalances)
	})
}
