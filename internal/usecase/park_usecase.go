package usecase

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/opendata-browser/internal/domain"
	"github.com/opendata-browser/internal/domain/repository"
	"github.com/opendata-browser/internal/pkg/errors"
	"github.com/opendata-browser/internal/pkg/geo"
	"github.com/opendata-browser/internal/pkg/utils"
	"github.com/opendata-browser/internal/usecase/dto"
)

var (
	parkIDFields       = []string{"id", "park_id", "objectid"}
	parkOfficialFields = []string{"official_name", "officialname", "name"}
	parkCommonFields   = []string{"common_name", "commonname"}
	parkStatusFields   = []string{"status"}
	parkTypeFields     = []string{"type", "park_type"}
	parkClassFields    = []string{"class", "park_class"}
	parkAddressFields  = []string{"address", "location_address"}
	parkAreaFields     = []string{"area_sq_m", "area_square_meters", "areasquaremeters", "area"}
	parkPointFields    = []string{"point", "location", "geometry_point", "the_geom"}
)

// ParkUseCase - датасет парков: прокси и разобранный список
type ParkUseCase struct {
	repo   repository.OpenDataRepository
	logger *zap.Logger
}

// NewParkUseCase - создание нового ParkUseCase
func NewParkUseCase(repo repository.OpenDataRepository, logger *zap.Logger) *ParkUseCase {
	return &ParkUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Proxy возвращает тело ответа портала без изменений и без кеширования
func (uc *ParkUseCase) Proxy(ctx context.Context) ([]byte, error) {
	body, err := uc.repo.FetchParksRaw(ctx)
	if err != nil {
		uc.logger.Error("Failed to proxy parks dataset", zap.Error(err))
		return nil, err
	}
	return body, nil
}

// List - парки с расстоянием до origin в километрах, если origin задан
func (uc *ParkUseCase) List(ctx context.Context, origin *domain.Coordinate) (*dto.ParkListResponse, error) {
	rows, err := uc.repo.FetchParks(ctx)
	if err != nil {
		uc.logger.Error("Failed to fetch parks", zap.Error(err))
		return nil, errors.ErrUpstream.WithDetails(map[string]interface{}{
			"dataset": "parks",
		})
	}

	parks := make([]domain.Park, 0, len(rows))
	for _, row := range rows {
		park := ParseParkRow(row)
		if origin != nil {
			if p, ok := park.Location.Coordinate(); ok {
				d := utils.HaversineDistance(origin.Lat, origin.Lon, p.Lat, p.Lon)
				park.DistanceFromUser = &d
			}
		}
		parks = append(parks, park)
	}

	return &dto.ParkListResponse{
		Parks: parks,
		Total: len(parks),
	}, nil
}

// ParseParkRow переводит строку датасета парков в domain.Park
func ParseParkRow(row domain.RawRow) domain.Park {
	park := domain.Park{
		ID:           row.Text(parkIDFields...),
		OfficialName: row.Text(parkOfficialFields...),
		CommonName:   row.Text(parkCommonFields...),
		Status:       row.Text(parkStatusFields...),
		Type:         row.Text(parkTypeFields...),
		Class:        row.Text(parkClassFields...),
		Address:      row.Text(parkAddressFields...),
	}

	if area, err := strconv.ParseFloat(row.Text(parkAreaFields...), 64); err == nil && utils.IsFinite(area) {
		park.AreaSquareMeters = &area
	}

	lat, lon := row.Text("latitude", "lat"), row.Text("longitude", "lon", "lng")
	if lat != "" && lon != "" {
		park.Location = domain.Location{Latitude: lat, Longitude: lon}
		return park
	}
	for _, field := range parkPointFields {
		if loc, ok := geo.ParsePoint(row[field]); ok {
			park.Location = loc
			break
		}
	}
	return park
}
