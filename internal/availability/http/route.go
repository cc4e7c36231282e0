package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers availability window routes. Mutations require the
// owning user; the by-username listing is public so booking clients can see
// when an owner is available.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/availability")
	group.Use(authMiddleware)
	{
		group.GET("", h.ListOwn)
		group.POST("", h.Create)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}

	g.GET("/owners/:username/availability", h.ListByUsername)
}
