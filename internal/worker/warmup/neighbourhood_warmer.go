// Package warmup - фоновое заполнение кеша районов для обоих датасетов закрытий
package warmup

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/opendata-browser/internal/domain"
	"github.com/opendata-browser/internal/worker"
)

// DatasetLoader - то же, что загружает страница закрытий
type DatasetLoader interface {
	Load(ctx context.Context, kind domain.DatasetKind) ([]domain.ClosureRecord, error)
	ResolveNeighbourhoods(ctx context.Context, records []domain.ClosureRecord) map[string]string
}

// NeighbourhoodWarmer каждый интервал загружает датасеты и разрешает районы.
// Каждый проход разрешает не больше ключей, чем один цикл загрузки страницы,
// поэтому отложенные ограничением координаты попадают в кеш постепенно.
type NeighbourhoodWarmer struct {
	*worker.BaseWorker
	loader DatasetLoader
	kinds  []domain.DatasetKind
}

func NewNeighbourhoodWarmer(loader DatasetLoader, interval time.Duration, logger *zap.Logger) *NeighbourhoodWarmer {
	return &NeighbourhoodWarmer{
		BaseWorker: worker.NewBaseWorker("neighbourhood-warmer", interval, logger),
		loader:     loader,
		kinds:      []domain.DatasetKind{domain.DatasetTrail, domain.DatasetTraffic},
	}
}

func (w *NeighbourhoodWarmer) Start(ctx context.Context) error {
	w.Logger().Info("Starting neighbourhood warmer", zap.Duration("interval", w.Interval()))
	return w.Run(ctx, w.WarmOnce)
}

// WarmOnce - один проход по всем датасетам; ошибки портала только логируются
func (w *NeighbourhoodWarmer) WarmOnce(ctx context.Context) {
	for _, kind := range w.kinds {
		records, err := w.loader.Load(ctx, kind)
		if err != nil {
			w.Logger().Warn("Warmup load failed", zap.String("kind", string(kind)), zap.Error(err))
			continue
		}

		names := w.loader.ResolveNeighbourhoods(ctx, records)
		resolved := 0
		for _, name := range names {
			if name != domain.NotAvailable {
				resolved++
			}
		}

		w.Logger().Info("Warmup pass finished",
			zap.String("kind", string(kind)),
			zap.Int("records", len(records)),
			zap.Int("coordinates", len(names)),
			zap.Int("resolved", resolved))
	}
}
