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

// ClosureHandler - обработчик списков закрытий троп и дорожных ограничений
type ClosureHandler struct {
	closureUC *usecase.ClosureUseCase
	logger    *zap.Logger
}

// NewClosureHandler - создание нового ClosureHandler
func NewClosureHandler(closureUC *usecase.ClosureUseCase, logger *zap.Logger) *ClosureHandler {
	return &ClosureHandler{
		closureUC: closureUC,
		logger:    logger,
	}
}

// List godoc
// @Summary Карточки закрытий
// @Description Загружает датасет, убирает дубли по тексту описания, сортирует и разрешает районы для записей без названия места. Сбой портала возвращает пустой список со статусом failed.
// @Tags Closures
// @Produce json
// @Param kind query string false "Датасет (trail, traffic)" default(trail)
// @Success 200 {object} utils.SuccessResponse{data=dto.ClosureListResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/closures [get]
func (h *ClosureHandler) List(c *fiber.Ctx) error {
	kind, err := parseKind(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.closureUC.List(c.Context(), kind)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
		Kind:  string(result.Kind),
	})
}

// Embed godoc
// @Summary Адрес встраиваемой карты
// @Tags Closures
// @Produce json
// @Param kind query string false "Датасет (trail, traffic)" default(trail)
// @Success 200 {object} utils.SuccessResponse{data=dto.EmbedResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/closures/embed [get]
func (h *ClosureHandler) Embed(c *fiber.Ctx) error {
	kind, err := parseKind(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	u, err := h.closureUC.EmbedURL(kind)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.EmbedResponse{Kind: kind, URL: u}, nil)
}

func parseKind(c *fiber.Ctx) (domain.DatasetKind, error) {
	var req dto.ClosureListRequest
	if err := c.QueryParser(&req); err != nil {
		return "", errors.ErrInvalidRequest
	}
	if err := validator.Validate(&req); err != nil {
		return "", err
	}
	if req.Kind == "" {
		return domain.DatasetTrail, nil
	}
	kind, ok := domain.ParseDatasetKind(req.Kind)
	if !ok {
		return "", errors.ErrInvalidDatasetKind
	}
	return kind, nil
}
