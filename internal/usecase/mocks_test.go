package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/opendata-browser/internal/domain"
)

// MockOpenDataRepository is a mock of OpenDataRepository
type MockOpenDataRepository struct {
	mock.Mock
}

func (m *MockOpenDataRepository) FetchTrailClosures(ctx context.Context) ([]domain.RawRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawRow), args.Error(1)
}

func (m *MockOpenDataRepository) FetchTrafficDisruptions(ctx context.Context) ([]domain.RawRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawRow), args.Error(1)
}

func (m *MockOpenDataRepository) FetchParks(ctx context.Context) ([]domain.RawRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawRow), args.Error(1)
}

func (m *MockOpenDataRepository) FetchParksRaw(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockNeighbourhoodRepository is a mock of NeighbourhoodRepository
type MockNeighbourhoodRepository struct {
	mock.Mock
}

func (m *MockNeighbourhoodRepository) LookupNeighbourhood(ctx context.Context, point domain.Coordinate, geometryColumn string) (string, error) {
	args := m.Called(ctx, point, geometryColumn)
	return args.String(0), args.Error(1)
}

// MockResolver is a mock of NeighbourhoodResolver
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) ResolveBatch(ctx context.Context, locs []domain.Location) map[string]string {
	args := m.Called(ctx, locs)
	return args.Get(0).(map[string]string)
}
