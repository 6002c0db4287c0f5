// Package webserver carries the echo scaffold shared by the storefront and
// admin surfaces: server construction, the JSON response envelope and
// bearer-token issuance for the admin panel.
package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/akash06959/agronova/config"
	"github.com/akash06959/agronova/internal/backend"
	"github.com/akash06959/agronova/internal/store"
)

// Env bundles the dependencies every handler package needs. It is built
// once at startup and threaded through route registration; there are no
// package-level singletons.
type Env struct {
	Config  *config.AppConfig
	Catalog *store.CatalogStore
	Cart    *store.CartStore
	Users   *store.SessionStore
	Admin   *store.SessionStore
	Notify  *store.NotifyStore
	Backend *backend.Client
	Bus     EventBus.Bus
}

// Server owns the echo instance.
type Server struct {
	e   *echo.Echo
	cfg *config.AppConfig
}

// New builds the server with recovery and request logging wired to zap.
func New(cfg *config.AppConfig) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI: true, LogStatus: true, LogMethod: true, LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Debug("http request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	return &Server{e: e, cfg: cfg}
}

// Echo exposes the underlying echo instance for route registration.
func (s *Server) Echo() *echo.Echo { return s.e }

// Start blocks serving HTTP on the configured address.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
	zap.S().Infof("web server listening on %s", addr)
	return s.e.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// OK wraps a success payload in the standard envelope.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code": 0,
		"data": data,
	})
}

// Fail responds with an error envelope.
func Fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, map[string]interface{}{
		"code":    1,
		"error":   code,
		"message": message,
	})
}

// IssueToken signs a bearer token for the admin panel.
func IssueToken(secret, username, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  username,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
