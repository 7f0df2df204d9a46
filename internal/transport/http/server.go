// Package http provides the HTTP server for the travel copilot.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Shuaib-8/Travel-Copilot/internal/config"
	"github.com/Shuaib-8/Travel-Copilot/internal/service"
	v1 "github.com/Shuaib-8/Travel-Copilot/internal/transport/http/v1"
	"github.com/Shuaib-8/Travel-Copilot/internal/transport/http/web"
	"github.com/Shuaib-8/Travel-Copilot/internal/transport/ws"
	"github.com/Shuaib-8/Travel-Copilot/policy"
)

// NewServer creates and configures the HTTP server serving the JSON API, the
// HTML views and the WebSocket endpoint.
func NewServer(svc *service.Service, policyEngine *policy.Engine, cfg *config.Config, logger *zap.Logger) (*echo.Echo, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	// Middleware
	e.Pre(middleware.AddTrailingSlash())
	e.Use(middleware.RequestLoggerWithConfig(requestLoggerConfig(logger)))
	e.Use(middleware.Recover())

	// Handlers
	v1Handler := v1.NewHandler(svc, policyEngine, cfg)
	webHandler := web.NewHandler(svc, policyEngine, cfg, logger)
	wsServer := ws.NewServer(svc, policyEngine, cfg, logger)

	// Register Routes
	v1Handler.RegisterRoutes(e)
	webHandler.RegisterRoutes(e)
	wsServer.RegisterRoutes(e)

	return e, nil
}

func requestLoggerConfig(logger *zap.Logger) middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	}
}
