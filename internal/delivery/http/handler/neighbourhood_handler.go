package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/opendata-browser/internal/domain"
	"github.com/opendata-browser/internal/pkg/errors"
	"github.com/opendata-browser/internal/pkg/utils"
	"github.com/opendata-browser/internal/pkg/validator"
	"github.com/opendata-browser/internal/usecase"
	"github.com/opendata-browser/internal/usecase/dto"
)

// NeighbourhoodHandler - обратное геокодирование одной точки
type NeighbourhoodHandler struct {
	geocodeUC *usecase.GeocodeUseCase
	logger    *zap.Logger
}

func NewNeighbourhoodHandler(geocodeUC *usecase.GeocodeUseCase, logger *zap.Logger) *NeighbourhoodHandler {
	return &NeighbourhoodHandler{
		geocodeUC: geocodeUC,
		logger:    logger,
	}
}

// Resolve godoc
// @Summary Район по координатам
// @Description Ключ кеша - строка "lat,lon" ровно в том виде, в каком координаты переданы. Если район не найден, возвращается "N/A", и этот результат тоже кешируется.
// @Tags Neighbourhoods
// @Produce json
// @Param lat query string true "Широта"
// @Param lon query string true "Долгота"
// @Success 200 {object} utils.SuccessResponse{data=dto.ResolveResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/neighbourhoods/resolve [get]
func (h *NeighbourhoodHandler) Resolve(c *fiber.Ctx) error {
	var req dto.ResolveRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	loc := domain.Location{Latitude: req.Lat, Longitude: req.Lon}
	if _, ok := loc.Coordinate(); !ok {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	name := h.geocodeUC.Resolve(c.Context(), loc)
	return utils.SendSuccess(c, dto.ResolveResponse{Key: loc.Key(), Name: name}, nil)
}

// ResetCache godoc
// @Summary Сбросить кеш районов
// @Description Удаляет все закешированные названия, включая "N/A"; следующие загрузки запросят районы заново.
// @Tags Neighbourhoods
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/neighbourhoods/cache [delete]
func (h *NeighbourhoodHandler) ResetCache(c *fiber.Ctx) error {
	if err := h.geocodeUC.ResetCache(c.Context()); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"reset": true}, nil)
}
