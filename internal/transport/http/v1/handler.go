// Package v1 provides the JSON API handlers.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Shuaib-8/Travel-Copilot/internal/config"
	"github.com/Shuaib-8/Travel-Copilot/internal/domain"
	"github.com/Shuaib-8/Travel-Copilot/internal/service"
	"github.com/Shuaib-8/Travel-Copilot/policy"
)

const (
	APITitle       = "Travel Copilot API"
	APIVersion     = "1.0.0"
	APIDescription = "API for travel planning co-pilot assistance"
)

// Handler handles JSON API requests.
type Handler struct {
	service *service.Service
	policy  *policy.Engine
	config  *config.Config
}

// NewHandler creates a new handler. policyEngine may be nil.
func NewHandler(service *service.Service, policyEngine *policy.Engine, cfg *config.Config) *Handler {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return &Handler{
		service: service,
		policy:  policyEngine,
		config:  cfg,
	}
}

// RegisterRoutes registers the API routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/", h.Info)
	g.GET("/health-check/", h.HealthCheck)
	g.POST("/travel-guidance/", h.TravelGuidance)
}

// Info describes the API.
// GET /api/
func (h *Handler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, domain.APIInfo{
		Title:       APITitle,
		Version:     APIVersion,
		Description: APIDescription,
	})
}

// HealthCheck returns health status.
// GET /api/health-check/
func (h *Handler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, domain.HealthResponse{Status: "API is running smoothly!"})
}
