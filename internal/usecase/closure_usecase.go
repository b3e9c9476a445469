package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/opendata-browser/internal/closure"
	"github.com/opendata-browser/internal/config"
	"github.com/opendata-browser/internal/domain"
	"github.com/opendata-browser/internal/domain/repository"
	"github.com/opendata-browser/internal/pkg/errors"
	"github.com/opendata-browser/internal/usecase/dto"
)

// NeighbourhoodResolver - разрешение районов пачкой за один цикл загрузки
type NeighbourhoodResolver interface {
	ResolveBatch(ctx context.Context, locs []domain.Location) map[string]string
}

// ClosureUseCase - загрузка и подготовка датасетов закрытий
type ClosureUseCase struct {
	repo     repository.OpenDataRepository
	resolver NeighbourhoodResolver
	maps     config.MapConfig
	logger   *zap.Logger
}

// NewClosureUseCase - создание нового ClosureUseCase
func NewClosureUseCase(
	repo repository.OpenDataRepository,
	resolver NeighbourhoodResolver,
	maps *config.MapConfig,
	logger *zap.Logger,
) *ClosureUseCase {
	return &ClosureUseCase{
		repo:     repo,
		resolver: resolver,
		maps:     *maps,
		logger:   logger,
	}
}

// Load загружает датасет, нормализует строки, убирает дубли и сортирует
func (uc *ClosureUseCase) Load(ctx context.Context, kind domain.DatasetKind) ([]domain.ClosureRecord, error) {
	var (
		rows []domain.RawRow
		err  error
	)
	switch kind {
	case domain.DatasetTrail:
		rows, err = uc.repo.FetchTrailClosures(ctx)
	case domain.DatasetTraffic:
		rows, err = uc.repo.FetchTrafficDisruptions(ctx)
	default:
		return nil, errors.ErrInvalidDatasetKind
	}
	if err != nil {
		uc.logger.Error("Failed to fetch closures",
			zap.String("kind", string(kind)),
			zap.Error(err))
		return nil, errors.ErrUpstream.WithDetails(map[string]interface{}{
			"dataset": string(kind),
		})
	}

	records := closure.DedupeAndSort(closure.NormalizeRecords(kind, rows))

	uc.logger.Debug("Closures loaded",
		zap.String("kind", string(kind)),
		zap.Int("rows", len(rows)),
		zap.Int("records", len(records)))

	return records, nil
}

// ResolveNeighbourhoods возвращает районы для записей без названия места
func (uc *ClosureUseCase) ResolveNeighbourhoods(ctx context.Context, records []domain.ClosureRecord) map[string]string {
	locs := make([]domain.Location, 0)
	for _, r := range records {
		if r.NeedsNeighbourhood() {
			locs = append(locs, r.Location)
		}
	}
	if len(locs) == 0 {
		return map[string]string{}
	}
	return uc.resolver.ResolveBatch(ctx, locs)
}

// List - карточки датасета. Сбой портала даёт пустой список со статусом failed.
func (uc *ClosureUseCase) List(ctx context.Context, kind domain.DatasetKind) (*dto.ClosureListResponse, error) {
	if !kind.Valid() {
		return nil, errors.ErrInvalidDatasetKind
	}

	records, err := uc.Load(ctx, kind)
	if err != nil {
		return &dto.ClosureListResponse{
			Kind:   kind,
			Status: dto.StatusFailed,
			Cards:  []domain.ClosureCard{},
		}, nil
	}

	names := uc.ResolveNeighbourhoods(ctx, records)
	cards := closure.BuildCards(records, names, nil)

	return &dto.ClosureListResponse{
		Kind:   kind,
		Status: dto.StatusReady,
		Cards:  cards,
		Total:  len(cards),
	}, nil
}

// EmbedURL - адрес карты для режима отображения "map"
func (uc *ClosureUseCase) EmbedURL(kind domain.DatasetKind) (string, error) {
	switch kind {
	case domain.DatasetTrail:
		return uc.maps.TrailEmbedURL, nil
	case domain.DatasetTraffic:
		return uc.maps.TrafficEmbedURL, nil
	}
	return "", errors.ErrInvalidDatasetKind
}
