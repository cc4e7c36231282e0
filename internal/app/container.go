package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ovalhall/meeting-scheduler-backend/internal/api"
	"github.com/ovalhall/meeting-scheduler-backend/internal/auth"
	"github.com/ovalhall/meeting-scheduler-backend/internal/availability"
	"github.com/ovalhall/meeting-scheduler-backend/internal/booking"
	"github.com/ovalhall/meeting-scheduler-backend/internal/file"
	"github.com/ovalhall/meeting-scheduler-backend/internal/pkg/storage"
	"github.com/ovalhall/meeting-scheduler-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Logger       *zap.Logger
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	UploadDir    string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	localStorage, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init local storage: %w", err)
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher, cfg.Logger)

	// Availability Module
	availabilityRepo := availability.NewPgxRepository(cfg.DBPool)
	availabilityService := availability.NewService(availabilityRepo, cfg.Logger)

	// Booking Module: the conflict engine reads owners, windows and existing
	// bookings; the service serializes validate-then-persist per owner.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	engine := booking.NewEngine(userService, availabilityRepo, bookingRepo)
	bookingService := booking.NewService(engine, bookingRepo, cfg.Logger)

	// File Module (avatars)
	fileRepo := file.NewPgxRepository(cfg.DBPool)
	fileService := file.NewService(fileRepo, localStorage)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		UserService:         userService,
		AvailabilityService: availabilityService,
		BookingService:      bookingService,
		FileService:         fileService,
		JWTManager:          jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
