package repository

import (
	"context"

	"github.com/opendata-browser/internal/domain"
)

// NeighbourhoodCache - кеш названий районов по ключу "lat,lon"
type NeighbourhoodCache interface {
	// Get возвращает запись и признак попадания
	Get(ctx context.Context, key string) (domain.NeighbourhoodEntry, bool, error)

	// Set сохраняет запись без срока жизни
	Set(ctx context.Context, key string, entry domain.NeighbourhoodEntry) error

	// Reset очищает кеш
	Reset(ctx context.Context) error

	// Len возвращает число записей
	Len(ctx context.Context) (int, error)
}
