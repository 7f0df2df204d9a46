package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Shuaib-8/Travel-Copilot/internal/config"
	"github.com/Shuaib-8/Travel-Copilot/internal/domain"
	"github.com/Shuaib-8/Travel-Copilot/internal/service"
	"github.com/Shuaib-8/Travel-Copilot/policy"
)

const (
	templateIndex        = "index"
	templateConversation = "conversation"
)

// PageData is the template context.
type PageData struct {
	Response string
	Messages domain.Transcript
	History  []domain.HistoryEntry
}

// Handler serves the HTML form.
type Handler struct {
	service *service.Service
	policy  *policy.Engine
	config  *config.Config
	logger  *zap.Logger
}

// NewHandler creates a new handler. policyEngine may be nil.
func NewHandler(service *service.Service, policyEngine *policy.Engine, cfg *config.Config, logger *zap.Logger) *Handler {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		service: service,
		policy:  policyEngine,
		config:  cfg,
		logger:  logger,
	}
}

// RegisterRoutes registers the HTML routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.POST("/", h.Ask)
	e.POST("/clear/", h.Clear)
}

// Index renders the form and the session's conversation.
// GET /
func (h *Handler) Index(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := h.sessionID(c)

	history, err := h.service.History(ctx, sessionID)
	if err != nil {
		h.logger.Warn("failed to load session history", zap.String("session_id", sessionID), zap.Error(err))
	}

	return h.render(c, templateIndex, PageData{History: history})
}

// Ask answers the submitted question.
// POST /
func (h *Handler) Ask(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := h.sessionID(c)

	userMessage := c.FormValue("user_message")
	prior, err := h.priorTranscript(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if h.policy != nil && prior != nil {
		decision, err := h.policy.Evaluate(ctx, policy.Input{
			Messages:    prior,
			MaxMessages: h.config.Policy.MaxMessages,
		})
		if err != nil {
			return err
		}
		if !decision.Allowed() {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, decision.Reason)
		}
	}

	turn, err := h.service.GuideSession(ctx, sessionID, userMessage, prior)
	if err != nil {
		return err
	}

	name := templateIndex
	if isHTMX(c) {
		name = templateConversation
	}
	return h.render(c, name, PageData{
		Response: turn.Reply,
		Messages: turn.Transcript,
		History:  turn.History,
	})
}

// Clear starts a new conversation for the session.
// POST /clear/
func (h *Handler) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := h.sessionID(c)

	if err := h.service.ClearSession(ctx, sessionID); err != nil {
		return err
	}

	if isHTMX(c) {
		return h.render(c, templateConversation, PageData{})
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// priorTranscript decodes the optional repeated "messages" form field, each
// a JSON {role, content} object. It returns nil when none were sent.
func (h *Handler) priorTranscript(c echo.Context) (domain.Transcript, error) {
	form, err := c.FormParams()
	if err != nil {
		return nil, fmt.Errorf("invalid form: %w", err)
	}

	var prior domain.Transcript
	for i, raw := range form["messages"] {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		var m domain.Message
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return nil, fmt.Errorf("messages[%d]: %w", i, err)
		}
		prior = append(prior, m)
	}
	return prior, nil
}

// sessionID returns the session id from the cookie, issuing a new one when
// the cookie is missing or malformed.
func (h *Handler) sessionID(c echo.Context) string {
	name := h.config.Session.CookieName
	if cookie, err := c.Cookie(name); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			return cookie.Value
		}
	}

	id := uuid.New().String()
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.config.Session.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.config.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	if _, err := h.service.EnsureSession(c.Request().Context(), id); err != nil {
		h.logger.Warn("failed to create session", zap.String("session_id", id), zap.Error(err))
	}
	return id
}

func (h *Handler) render(c echo.Context, name string, data PageData) error {
	return c.Render(http.StatusOK, name, data)
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}
