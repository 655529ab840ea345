package router

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github/chapool/sol-explorer/internal/api"
	"github/chapool/sol-explorer/internal/api/handlers"
	"github/chapool/sol-explorer/internal/api/httperrors"
	"github/chapool/sol-explorer/internal/metrics"
	"github/chapool/sol-explorer/internal/util"
)

// Init wires echo, its middlewares and every route onto s.
func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = s.Config.Echo.Debug
	s.Echo.HideBanner = true
	s.Echo.HidePort = true
	s.Echo.Logger.SetOutput(&echoLogWriter{})

	// ---
	// General middleware
	s.Echo.HTTPErrorHandler = httperrors.HTTPErrorHandler

	s.Echo.Pre(middleware.RemoveTrailingSlash())

	s.Echo.Use(middleware.Recover())
	s.Echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return uuid.NewString()
		},
	}))
	s.Echo.Use(contextLogger())
	s.Echo.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  metrics.Namespace,
		Subsystem:  "http",
		Registerer: s.Metrics.Registry(),
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	s.Echo.Use(requestLogger())

	s.Router = &api.Router{
		Routes: nil, // will be populated by handlers.AttachAllRoutes(s)

		// Unsecured base group available at /**
		Root: s.Echo.Group(""),

		// Management endpoints, unauthenticated, read-only
		Management: s.Echo.Group("/-"),

		// API endpoints
		APIV1Accounts:     s.Echo.Group("/api/v1/accounts"),
		APIV1Transactions: s.Echo.Group("/api/v1/transactions"),
	}

	// ---
	// Finally attach our handlers
	handlers.AttachAllRoutes(s)
}

// contextLogger puts a request scoped logger into the request context, so
// services called by handlers log with the request id.
func contextLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			l := log.With().
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Logger()
			c.SetRequest(req.WithContext(util.WithLogger(req.Context(), l)))

			return next(c)
		}
	}
}

// requestLogger logs every finished request. Handler errors are rendered by
// the global error handler first so the logged status is the one sent.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		HandleError:  true,
		LogStatus:    true,
		LogMethod:    true,
		LogURIPath:   true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l := util.LogFromContext(c.Request().Context())

			event := l.Info()
			if v.Status >= http.StatusInternalServerError {
				event = l.Warn().Err(v.Error)
			}
			event.Int("status", v.Status).
				Dur("duration", v.Latency).
				Msg("Request handled")

			return nil
		},
	})
}

type echoLogWriter struct{}

func (w *echoLogWriter) Write(p []byte) (int, error) {
	log.Debug().Str("component", "echo").Msg(string(p))
	return len(p), nil
}
