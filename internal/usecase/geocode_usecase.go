package usecase

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/opendata-browser/internal/config"
	"github.com/opendata-browser/internal/domain"
	"github.com/opendata-browser/internal/domain/repository"
	"github.com/opendata-browser/internal/pkg/errors"
	"github.com/opendata-browser/internal/pkg/metrics"
)

// GeocodeUseCase - обратное геокодирование точек в названия районов
type GeocodeUseCase struct {
	repo        repository.NeighbourhoodRepository
	cache       repository.NeighbourhoodCache
	columns     []string
	maxPerCycle int
	retryFailed bool
	logger      *zap.Logger
}

// NewGeocodeUseCase - создание нового GeocodeUseCase
func NewGeocodeUseCase(
	repo repository.NeighbourhoodRepository,
	cache repository.NeighbourhoodCache,
	cfg *config.GeocodeConfig,
	logger *zap.Logger,
) *GeocodeUseCase {
	return &GeocodeUseCase{
		repo:        repo,
		cache:       cache,
		columns:     cfg.GeometryColumns,
		maxPerCycle: cfg.MaxPerCycle,
		retryFailed: cfg.RetryFailed,
		logger:      logger,
	}
}

// Resolve возвращает название района для точки или "N/A".
// Результат, в том числе "N/A", кешируется по ключу "lat,lon".
func (uc *GeocodeUseCase) Resolve(ctx context.Context, loc domain.Location) string {
	point, ok := loc.Coordinate()
	if !ok {
		return domain.NotAvailable
	}

	key := loc.Key()
	if name, hit := uc.cached(ctx, key); hit {
		return name
	}

	entry := uc.lookup(ctx, key, point)
	uc.store(ctx, key, entry)
	return entry.Name
}

// ResolveBatch разрешает набор точек за один цикл загрузки. Не более maxPerCycle
// некешированных ключей запрашиваются параллельно; остальные возвращаются как
// "N/A" и не кешируются, чтобы их разрешила следующая загрузка.
func (uc *GeocodeUseCase) ResolveBatch(ctx context.Context, locs []domain.Location) map[string]string {
	names := make(map[string]string, len(locs))

	type pending struct {
		key   string
		point domain.Coordinate
	}
	var queue []pending
	deferred := 0

	for _, loc := range locs {
		key := loc.Key()
		if _, seen := names[key]; seen {
			continue
		}
		point, ok := loc.Coordinate()
		if !ok {
			names[key] = domain.NotAvailable
			continue
		}
		if name, hit := uc.cached(ctx, key); hit {
			names[key] = name
			continue
		}
		names[key] = domain.NotAvailable
		if uc.maxPerCycle > 0 && len(queue) >= uc.maxPerCycle {
			deferred++
			continue
		}
		queue = append(queue, pending{key: key, point: point})
	}

	if len(queue) == 0 {
		return names
	}

	if deferred > 0 {
		metrics.GeocodeDeferred.Add(float64(deferred))
		uc.logger.Debug("Geocode cap reached, deferring lookups",
			zap.Int("queued", len(queue)),
			zap.Int("deferred", deferred))
	}

	// Каждая горутина пишет только в свой слот, ошибки поглощаются в lookup
	entries := make([]domain.NeighbourhoodEntry, len(queue))
	var g errgroup.Group
	for i, p := range queue {
		g.Go(func() error {
			entries[i] = uc.lookup(ctx, p.key, p.point)
			return nil
		})
	}
	_ = g.Wait()

	for i, p := range queue {
		uc.store(ctx, p.key, entries[i])
		names[p.key] = entries[i].Name
	}

	uc.logger.Info("Neighbourhoods resolved",
		zap.Int("requested", len(queue)),
		zap.Int("total", len(names)))

	return names
}

// ResetCache очищает кеш районов, в том числе закешированные "N/A"
func (uc *GeocodeUseCase) ResetCache(ctx context.Context) error {
	if err := uc.cache.Reset(ctx); err != nil {
		uc.logger.Error("Failed to reset neighbourhood cache", zap.Error(err))
		return errors.ErrCacheError
	}
	uc.logger.Info("Neighbourhood cache reset")
	return nil
}

func (uc *GeocodeUseCase) cached(ctx context.Context, key string) (string, bool) {
	entry, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("Neighbourhood cache read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	if !ok || (uc.retryFailed && entry.Outcome == domain.OutcomeFailed) {
		metrics.CacheMisses.Inc()
		return "", false
	}
	metrics.CacheHits.Inc()
	return entry.Name, true
}

// lookup опрашивает колонки геометрии по очереди, первый непустой ответ побеждает
func (uc *GeocodeUseCase) lookup(ctx context.Context, key string, point domain.Coordinate) domain.NeighbourhoodEntry {
	failed := false
	for _, column := range uc.columns {
		name, err := uc.repo.LookupNeighbourhood(ctx, point, column)
		if err != nil {
			failed = true
			uc.logger.Warn("Neighbourhood lookup failed",
				zap.String("key", key),
				zap.String("column", column),
				zap.Error(err))
			continue
		}
		if name != "" {
			metrics.GeocodeLookups.WithLabelValues(string(domain.OutcomeFound)).Inc()
			return domain.NeighbourhoodEntry{Name: name, Outcome: domain.OutcomeFound}
		}
	}

	outcome := domain.OutcomeEmpty
	if failed {
		outcome = domain.OutcomeFailed
	}
	metrics.GeocodeLookups.WithLabelValues(string(outcome)).Inc()
	return domain.NeighbourhoodEntry{Name: domain.NotAvailable, Outcome: outcome}
}

func (uc *GeocodeUseCase) store(ctx context.Context, key string, entry domain.NeighbourhoodEntry) {
	if err := uc.cache.Set(ctx, key, entry); err != nil {
		uc.logger.Warn("Neighbourhood cache write failed", zap.String("key", key), zap.Error(err))
	}
}
