// Package adminapi is the back-office surface: product CRUD through the
// catalog store, user and order management proxied to the backend, and CSV
// exports. All routes except login sit behind a bearer token, and every
// guarded request counts as activity for the admin idle policy.
package adminapi

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/akash06959/agronova/internal/webserver"
)

type handler struct {
	env *webserver.Env
}

// Register mounts the admin surface under /admin/api.
func Register(e *echo.Echo, env *webserver.Env) {
	h := &handler{env: env}

	e.POST("/admin/api/login", h.login)

	g := e.Group("/admin/api")
	g.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(env.Config.Web.JwtSecret),
	}))
	// Any authenticated admin request is qualifying activity.
	g.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			env.Admin.Touch()
			return next(c)
		}
	})

	g.GET("/session", h.session)
	g.POST("/session/refresh", h.refreshSession)
	g.POST("/logout", h.logout)

	g.GET("/products", h.listProducts)
	g.POST("/products", h.createProduct)
	g.PUT("/products/:id", h.updateProduct)
	g.DELETE("/products/:id", h.deleteProduct)
	g.GET("/products/export", h.exportProducts)

	g.GET("/users", h.listUsers)
	g.DELETE("/users/:id", h.deleteUser)

	g.GET("/orders", h.listOrders)
	g.PATCH("/orders/:id/status", h.updateOrderStatus)
	g.GET("/orders/export", h.exportOrders)
}
