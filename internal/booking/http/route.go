package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking routes. Creating a booking is public:
// third parties book without accounts. Reading an owner's bookings is
// restricted to the owner.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.POST("/owners/:username/bookings", h.Create)
	g.GET("/owners/:username/bookings", authMiddleware, h.ListByOwner)
	g.GET("/bookings/:id", authMiddleware, h.Get)
}
