package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"lending-ledger/internal/domain/ledger"
	"lending-ledger/internal/pkg/apperrors"
)

const cacheTTL = 60 * time.Second

// Cache stores rendered report snapshots for a short TTL. A nil cache
// disables caching; misses are (value="", ok=false), never an error worth
// failing a report over.
type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type Service interface {
	Monthly(ctx context.Context, month time.Month, year int) (*Summary, error)

	Dashboard(ctx context.Context) (*Stats, error)

	Pending(ctx context.Context) ([]PendingBalance, error)

	History(ctx context.Context, borrowerID int64) ([]PaymentView, error)
}

type serviceImpl struct {
	repo   ledger.Repository
	cache  Cache
	logger *slog.Logger
}

func NewService(repo ledger.Repository, cache Cache, logger *slog.Logger) Service {
	if repo == nil {
		panic("ledger repository cannot be nil")
	}
	return &serviceImpl{
		repo:   repo,
		cache:  cache,
		logger: logger.With(slog.String("component", "reportService")),
	}
}

func (s *serviceImpl) Monthly(ctx context.Context, month time.Month, year int) (*Summary, error) {
	key := fmt.Sprintf("reports:monthly:%04d-%02d", year, int(month))
	var cached Summary
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	borrowers, payments, err := s.loadTables(ctx)
	if err != nil {
		return nil, err
	}

	summary := MonthlySummary(payments, ledger.RecomputeBalances(borrowers, payments), month, year)
	s.cacheSet(ctx, key, summary)
	return &summary, nil
}

func (s *serviceImpl) Dashboard(ctx context.Context) (*Stats, error) {
	const key = "reports:dashboard"
	var cached Stats
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	borrowers, payments, err := s.loadTables(ctx)
	if err != nil {
		return nil, err
	}

	stats := DashboardStats(ledger.RecomputeBalances(borrowers, payments), payments)
	s.cacheSet(ctx, key, stats)
	return &stats, nil
}

func (s *serviceImpl) Pending(ctx context.Context) ([]PendingBalance, error) {
	borrowers, payments, err := s.loadTables(ctx)
	if err != nil {
		return nil, err
	}
	return PendingBalances(ledger.RecomputeBalances(borrowers, payments)), nil
}

func (s *serviceImpl) History(ctx context.Context, borrowerID int64) ([]PaymentView, error) {
	payments, err := s.repo.LoadPayments(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load payment table", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to load payments: %v", apperrors.ErrInternalServer, err)
	}
	return PaymentHistory(borrowerID, payments), nil
}

func (s *serviceImpl) loadTables(ctx context.Context) ([]ledger.Borrower, []ledger.Payment, error) {
	borrowers, err := s.repo.LoadBorrowers(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load borrower table", slog.Any("error", err))
		return nil, nil, fmt.Errorf("%w: failed to load borrowers: %v", apperrors.ErrInternalServer, err)
	}
	payments, err := s.repo.LoadPayments(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load payment table", slog.Any("error", err))
		return nil, nil, fmt.Errorf("%w: failed to load payments: %v", apperrors.ErrInternalServer, err)
	}
	return borrowers, payments, nil
}

func (s *serviceImpl) cacheGet(ctx context.Context, key string, out interface{}) bool {
	if s.cache == nil {
		return false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "Report cache read failed", "key", key, slog.Any("error", err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.WarnContext(ctx, "Discarding unreadable cache entry", "key", key, slog.Any("error", err))
		return false
	}
	return true
}

func (s *serviceImpl) cacheSet(ctx context.Context, key string, v interface{}) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "Report cache write failed", "key", key, slog.Any("error", err))
	}
}
