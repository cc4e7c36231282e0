package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all user-related routes (including Auth).
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, authMiddleware gin.HandlerFunc) {
	// Public Routes
	usersGroup := g.Group("/users")
	{
		usersGroup.POST("", h.Register)
		usersGroup.POST("/login", h.Login)
	}

	// Authenticated Routes
	me := g.Group("/users/me")
	me.Use(authMiddleware)
	{
		me.GET("", h.Me)
		me.PATCH("", h.UpdateMe)
		me.POST("/avatar", h.UploadAvatar)
	}
}
