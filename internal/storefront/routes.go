// Package storefront is the shopper-facing surface. Handlers read the
// stores and dispatch actions into them; operations the stores do not own
// (orders, profile edits, soil analysis) go straight to the backend client,
// mirroring how the pages talk past the stores for those flows.
package storefront

import (
	"github.com/labstack/echo/v4"

	"github.com/akash06959/agronova/internal/webserver"
)

type handler struct {
	env *webserver.Env
}

// Register mounts the storefront under /api.
func Register(e *echo.Echo, env *webserver.Env) {
	h := &handler{env: env}
	g := e.Group("/api")

	g.GET("/products", h.listProducts)
	g.GET("/products/featured", h.featuredProducts)
	g.GET("/products/search", h.searchProducts)
	g.GET("/products/slug/:slug", h.productBySlug)
	g.GET("/categories", h.categories)
	g.GET("/categories/stats", h.categoryStats)

	g.GET("/cart", h.getCart)
	g.POST("/cart", h.addToCart)
	g.PUT("/cart/:id", h.updateQuantity)
	g.DELETE("/cart/:id", h.removeFromCart)
	g.DELETE("/cart", h.clearCart)

	g.GET("/wishlist", h.getWishlist)
	g.POST("/wishlist", h.addToWishlist)
	g.DELETE("/wishlist/:id", h.removeFromWishlist)
	g.DELETE("/wishlist", h.clearWishlist)

	g.POST("/auth/login", h.login)
	g.POST("/auth/register", h.register)
	g.POST("/auth/logout", h.logout)
	g.GET("/auth/session", h.session)
	g.PUT("/profile", h.updateProfile)

	g.POST("/checkout", h.checkout)
	g.GET("/orders", h.listOrders)
	g.PATCH("/orders/:id/cancel", h.cancelOrder)

	g.POST("/soil/analyze", h.analyzeSoil)
	g.POST("/soil/recommend", h.recommendCrop)
	g.POST("/soil/desired", h.desiredCrop)
	g.POST("/soil/report", h.fullAnalysis)
	g.GET("/soil/model", h.modelInfo)

	g.GET("/notification", h.currentNotification)
	g.DELETE("/notification", h.hideNotification)
	g.GET("/events", h.waitForChange)
}
