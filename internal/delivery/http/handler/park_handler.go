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

// ParkHandler - обработчик датасета парков
type ParkHandler struct {
	parkUC *usecase.ParkUseCase
	logger *zap.Logger
}

// NewParkHandler - создание нового ParkHandler
func NewParkHandler(parkUC *usecase.ParkUseCase, logger *zap.Logger) *ParkHandler {
	return &ParkHandler{
		parkUC: parkUC,
		logger: logger,
	}
}

// Proxy godoc
// @Summary Прокси датасета парков
// @Description Возвращает ответ портала без изменений (не более 1000 строк, без кеширования). При ошибке портала - 500 с текстом ошибки.
// @Tags Parks
// @Produce json
// @Success 200 {array} object
// @Failure 500 {string} string
// @Router /api/parks [get]
func (h *ParkHandler) Proxy(c *fiber.Ctx) error {
	body, err := h.parkUC.Proxy(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch parks data: " + err.Error())
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(body)
}

// List godoc
// @Summary Список парков
// @Description Разобранный датасет парков. Если переданы lat и lon, для каждого парка считается расстояние в километрах.
// @Tags Parks
// @Produce json
// @Param lat query number false "Широта пользователя"
// @Param lon query number false "Долгота пользователя"
// @Success 200 {object} utils.SuccessResponse{data=dto.ParkListResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/parks [get]
func (h *ParkHandler) List(c *fiber.Ctx) error {
	var req dto.ParkListRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	var origin *domain.Coordinate
	if req.Lat != "" || req.Lon != "" {
		p, ok := domain.Location{Latitude: req.Lat, Longitude: req.Lon}.Coordinate()
		if !ok {
			return utils.SendError(c, errors.ErrInvalidCoordinates)
		}
		origin = &p
	}

	result, err := h.parkUC.List(c.Context(), origin)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}
