package repository

import (
	"context"

	"github.com/opendata-browser/internal/domain"
)

// OpenDataRepository определяет методы получения датасетов портала открытых данных
type OpenDataRepository interface {
	// FetchTrailClosures возвращает закрытия троп (с лимитом строк)
	FetchTrailClosures(ctx context.Context) ([]domain.RawRow, error)

	// FetchTrafficDisruptions возвращает дорожные ограничения с фильтром по статусу
	FetchTrafficDisruptions(ctx context.Context) ([]domain.RawRow, error)

	// FetchParks возвращает датасет парков
	FetchParks(ctx context.Context) ([]domain.RawRow, error)

	// FetchParksRaw возвращает датасет парков без разбора, для прокси
	FetchParksRaw(ctx context.Context) ([]byte, error)
}

// NeighbourhoodRepository определяет поиск района по точке
type NeighbourhoodRepository interface {
	// LookupNeighbourhood ищет район в радиусе от точки по указанной колонке геометрии.
	// Пустая строка без ошибки означает, что район не найден.
	LookupNeighbourhood(ctx context.Context, point domain.Coordinate, geometryColumn string) (string, error)
}
