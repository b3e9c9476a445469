package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/opendata-browser/internal/domain"
	apperrors "github.com/opendata-browser/internal/pkg/errors"
	"github.com/opendata-browser/internal/usecase"
)

func TestParkUseCase_Proxy(t *testing.T) {
	ctx := context.Background()

	t.Run("returns upstream body verbatim", func(t *testing.T) {
		body := []byte(`[{"id":"1","official_name":"Hawrelak Park"}]`)
		repo := &MockOpenDataRepository{}
		repo.On("FetchParksRaw", ctx).Return(body, nil)

		uc := usecase.NewParkUseCase(repo, zap.NewNop())
		got, err := uc.Proxy(ctx)
		require.NoError(t, err)
		assert.Equal(t, body, got)
	})

	t.Run("propagates upstream error", func(t *testing.T) {
		repo := &MockOpenDataRepository{}
		repo.On("FetchParksRaw", ctx).Return(nil, errors.New("status 500"))

		uc := usecase.NewParkUseCase(repo, zap.NewNop())
		_, err := uc.Proxy(ctx)
		assert.Error(t, err)
	})
}

func TestParkUseCase_List(t *testing.T) {
	ctx := context.Background()
	rows := []domain.RawRow{
		{
			"id":            "42",
			"official_name": "William Hawrelak Park",
			"common_name":   "Hawrelak",
			"area_sq_m":     "686000.5",
			"latitude":      "53.5278",
			"longitude":     "-113.5526",
		},
		{
			"id":            "43",
			"official_name": "Nowhere Park",
		},
	}

	t.Run("with origin computes distance", func(t *testing.T) {
		repo := &MockOpenDataRepository{}
		repo.On("FetchParks", ctx).Return(rows, nil)

		uc := usecase.NewParkUseCase(repo, zap.NewNop())
		resp, err := uc.List(ctx, &domain.Coordinate{Lat: 53.5461, Lon: -113.4938})
		require.NoError(t, err)
		require.Equal(t, 2, resp.Total)

		p := resp.Parks[0]
		assert.Equal(t, "42", p.ID)
		assert.Equal(t, "Hawrelak", p.CommonName)
		require.NotNil(t, p.AreaSquareMeters)
		assert.InDelta(t, 686000.5, *p.AreaSquareMeters, 0.001)
		require.NotNil(t, p.DistanceFromUser)
		assert.InDelta(t, 4.3, *p.DistanceFromUser, 0.3)

		assert.Nil(t, resp.Parks[1].DistanceFromUser)
	})

	t.Run("without origin leaves distance unset", func(t *testing.T) {
		repo := &MockOpenDataRepository{}
		repo.On("FetchParks", ctx).Return(rows, nil)

		uc := usecase.NewParkUseCase(repo, zap.NewNop())
		resp, err := uc.List(ctx, nil)
		require.NoError(t, err)
		assert.Nil(t, resp.Parks[0].DistanceFromUser)
	})

	t.Run("upstream failure", func(t *testing.T) {
		repo := &MockOpenDataRepository{}
		repo.On("FetchParks", ctx).Return(nil, errors.New("status 502"))

		uc := usecase.NewParkUseCase(repo, zap.NewNop())
		_, err := uc.List(ctx, nil)
		assert.ErrorIs(t, err, apperrors.ErrUpstream)
	})
}

func TestParseParkRow_PointFallback(t *testing.T) {
	park := usecase.ParseParkRow(domain.RawRow{
		"official_name": "Rundle Park",
		"location": map[string]interface{}{
			"type":        "Point",
			"coordinates": []interface{}{-113.38, 53.56},
		},
	})
	assert.Equal(t, "53.56", park.Location.Latitude)
	assert.Equal(t, "-113.38", park.Location.Longitude)
}
