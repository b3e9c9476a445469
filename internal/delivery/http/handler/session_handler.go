package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/opendata-browser/internal/browser"
	"github.com/opendata-browser/internal/domain"
	"github.com/opendata-browser/internal/pkg/errors"
	"github.com/opendata-browser/internal/pkg/utils"
	"github.com/opendata-browser/internal/pkg/validator"
	"github.com/opendata-browser/internal/usecase"
	"github.com/opendata-browser/internal/usecase/dto"
)

// SessionHandler - JSON API состояния страницы закрытий
type SessionHandler struct {
	store     *browser.Store
	closureUC *usecase.ClosureUseCase
	logger    *zap.Logger
}

// NewSessionHandler - создание нового SessionHandler
func NewSessionHandler(store *browser.Store, closureUC *usecase.ClosureUseCase, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		store:     store,
		closureUC: closureUC,
		logger:    logger,
	}
}

// Create godoc
// @Summary Новая сессия
// @Description Создаёт сессию и сразу начинает загрузку датасета троп
// @Tags Sessions
// @Produce json
// @Success 201 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Router /api/v1/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	sess := h.store.Create()
	c.Status(fiber.StatusCreated)
	return h.send(c, sess.ID, sess.State())
}

// Get godoc
// @Summary Состояние сессии
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	sess, err := h.store.Get(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return h.send(c, sess.ID, sess.State())
}

// SelectDataset godoc
// @Summary Переключение датасета
// @Description Начинает новый цикл загрузки; результат предыдущей загрузки будет отброшен
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.SelectDatasetRequest true "Датасет"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/dataset [put]
func (h *SessionHandler) SelectDataset(c *fiber.Ctx) error {
	sess, err := h.store.Get(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.SelectDatasetRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	state, err := sess.SelectDataset(domain.DatasetKind(req.Kind))
	if err != nil {
		return utils.SendError(c, err)
	}
	return h.send(c, sess.ID, state)
}

// SelectView godoc
// @Summary Режим отображения
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.SelectViewRequest true "Режим (list, map)"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/view [put]
func (h *SessionHandler) SelectView(c *fiber.Ctx) error {
	sess, err := h.store.Get(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.SelectViewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	state, err := sess.SelectView(browser.ViewMode(req.View))
	if err != nil {
		return utils.SendError(c, err)
	}
	return h.send(c, sess.ID, state)
}

// ToggleCard godoc
// @Summary Раскрыть или свернуть карточку
// @Description Ключ карточки - заголовок, дата начала и позиция. Карточки без усечения не переключаются.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.ToggleCardRequest true "Ключ карточки"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/cards/toggle [post]
func (h *SessionHandler) ToggleCard(c *fiber.Ctx) error {
	sess, err := h.store.Get(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.ToggleCardRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	return h.send(c, sess.ID, sess.ToggleCard(req.Key))
}

func (h *SessionHandler) send(c *fiber.Ctx, id string, state browser.State) error {
	resp := buildSessionResponse(id, state, h.closureUC)
	return utils.SendSuccess(c, resp, &utils.Meta{
		Total:      resp.Total,
		Kind:       string(resp.Kind),
		Generation: resp.Generation,
	})
}

// buildSessionResponse - снимок для JSON API и HTML-страницы
func buildSessionResponse(id string, state browser.State, closureUC *usecase.ClosureUseCase) dto.SessionResponse {
	cards := state.Cards()
	resp := dto.SessionResponse{
		ID:         id,
		Kind:       state.Kind,
		View:       string(state.View),
		Status:     string(state.Status),
		Generation: state.Generation,
		Cards:      cards,
		Total:      len(cards),
	}
	if state.View == browser.ViewMap {
		resp.EmbedURL, _ = closureUC.EmbedURL(state.Kind)
	}
	return resp
}
