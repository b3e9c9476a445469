package handler

import (
	"embed"
	"encoding/json"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/opendata-browser/internal/browser"
	"github.com/opendata-browser/internal/domain"
	"github.com/opendata-browser/internal/usecase"
	"github.com/opendata-browser/internal/usecase/dto"
)

//go:embed templates/*.html
var templateFS embed.FS

// SessionCookie - cookie с ID сессии страницы закрытий
const SessionCookie = "closures_session"

// ClosurePageData - данные для шаблона страницы закрытий
type ClosurePageData struct {
	Title   string
	Session dto.SessionResponse
	Kinds   []PageOption
	Views   []PageOption
	Loading bool
}

// PageOption - кнопка переключателя
type PageOption struct {
	Value  string
	Label  string
	Active bool
}

// ClosurePageHandler - HTML-страница закрытий без JavaScript-фреймворка
type ClosurePageHandler struct {
	templates *template.Template
	store     *browser.Store
	closureUC *usecase.ClosureUseCase
	logger    *zap.Logger
}

// NewClosurePageHandler - создание хендлера страницы, шаблоны встроены в бинарник
func NewClosurePageHandler(store *browser.Store, closureUC *usecase.ClosureUseCase, logger *zap.Logger) (*ClosurePageHandler, error) {
	tmpl, err := template.New("closures").Funcs(template.FuncMap{
		"json": func(v interface{}) (string, error) {
			b, err := json.Marshal(v)
			return string(b), err
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &ClosurePageHandler{
		templates: tmpl,
		store:     store,
		closureUC: closureUC,
		logger:    logger,
	}, nil
}

// Render - GET /closures
func (h *ClosurePageHandler) Render(c *fiber.Ctx) error {
	sess := h.session(c)
	state := sess.State()

	data := ClosurePageData{
		Title:   "Closures",
		Session: buildSessionResponse(sess.ID, state, h.closureUC),
		Kinds: []PageOption{
			{Value: string(domain.DatasetTrail), Label: "Trail closures", Active: state.Kind == domain.DatasetTrail},
			{Value: string(domain.DatasetTraffic), Label: "Traffic disruptions", Active: state.Kind == domain.DatasetTraffic},
		},
		Views: []PageOption{
			{Value: string(browser.ViewList), Label: "List", Active: state.View == browser.ViewList},
			{Value: string(browser.ViewMap), Label: "Map", Active: state.View == browser.ViewMap},
		},
		Loading: state.Status == browser.StatusLoading || state.Status == browser.StatusIdle,
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	return h.templates.ExecuteTemplate(c.Response().BodyWriter(), "closures.html", data)
}

// SelectDataset - POST /closures/dataset
func (h *ClosurePageHandler) SelectDataset(c *fiber.Ctx) error {
	sess := h.session(c)
	if kind, ok := domain.ParseDatasetKind(c.FormValue("kind")); ok {
		_, _ = sess.SelectDataset(kind)
	}
	return c.Redirect("/closures", fiber.StatusSeeOther)
}

// SelectView - POST /closures/view
func (h *ClosurePageHandler) SelectView(c *fiber.Ctx) error {
	sess := h.session(c)
	if view, ok := browser.ParseViewMode(c.FormValue("view")); ok {
		_, _ = sess.SelectView(view)
	}
	return c.Redirect("/closures", fiber.StatusSeeOther)
}

// ToggleCard - POST /closures/toggle
func (h *ClosurePageHandler) ToggleCard(c *fiber.Ctx) error {
	sess := h.session(c)
	if key := c.FormValue("key"); key != "" {
		sess.ToggleCard(key)
	}
	return c.Redirect("/closures", fiber.StatusSeeOther)
}

// session берёт сессию из cookie или заводит новую
func (h *ClosurePageHandler) session(c *fiber.Ctx) *browser.Session {
	if id := c.Cookies(SessionCookie); id != "" {
		if sess, err := h.store.Get(id); err == nil {
			return sess
		}
	}

	sess := h.store.Create()
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	h.logger.Debug("Page session created", zap.String("session_id", sess.ID))
	return sess
}
