package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ovalhall/meeting-scheduler-backend/internal/auth"
	"github.com/ovalhall/meeting-scheduler-backend/internal/availability"
	availabilityHttp "github.com/ovalhall/meeting-scheduler-backend/internal/availability/http"
	"github.com/ovalhall/meeting-scheduler-backend/internal/booking"
	bookingHttp "github.com/ovalhall/meeting-scheduler-backend/internal/booking/http"
	"github.com/ovalhall/meeting-scheduler-backend/internal/file"
	fileHttp "github.com/ovalhall/meeting-scheduler-backend/internal/file/http"
	"github.com/ovalhall/meeting-scheduler-backend/internal/user"
	userHttp "github.com/ovalhall/meeting-scheduler-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction        bool
	ProdOrigins         string
	UserService         user.Service
	AvailabilityService availability.Service
	BookingService      booking.Service
	FileService         file.Service
	JWTManager          *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	fileHandler := fileHttp.NewHandler(cfg.FileService)
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager, fileHandler)
	availabilityHandler := availabilityHttp.NewHandler(cfg.AvailabilityService, cfg.UserService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.UserService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		fileHttp.RegisterRoutes(v1, fileHandler)
	}

	return r
}
