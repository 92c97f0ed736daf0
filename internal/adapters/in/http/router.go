package http

import (
	"log/slog"
	"net/http"

	"fulfillment/internal/adapters/in/http/docs"
	"fulfillment/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// BaseURL prefixes every API route.
const BaseURL = "/api/v1"

// NewRouter builds the echo instance: health check, swagger UI, and the
// OpenAPI-validated API group.
func NewRouter(server *Server, logger *slog.Logger) (*echo.Echo, error) {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	if err = docs.Register(swagger); err != nil {
		return nil, err
	}
	validator, err := OpenAPIValidator(swagger, BaseURL)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.LogAttrs(c.Request().Context(), slog.LevelDebug, "Request handled",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group(BaseURL, validator)
	servers.RegisterHandlersWithBaseURL(api, server, "")

	return e, nil
}
