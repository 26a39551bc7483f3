package handlers

import (
	"gorm.io/gorm"

	"catsofasia/domain/repositories"
	"catsofasia/domain/services"
	"catsofasia/infrastructure/cloudflare"
	"catsofasia/infrastructure/redis"
	"catsofasia/pkg/config"
)

// Services contains all the services needed for handlers
type Services struct {
	PhotoService    services.PhotoService
	LocationService services.LocationService
	PostingService  services.PostingService
	AuthService     services.AuthService
}

// Handlers contains all HTTP handlers
type Handlers struct {
	RPCHandler    *RPCHandler
	PhotoHandler  *PhotoHandler
	AuthHandler   *AuthHandler
	LogHandler    *LogHandler
	HealthHandler *HealthHandler

	// Short accessors for routes
	RPC    *RPCHandler
	Photo  *PhotoHandler
	Auth   *AuthHandler
	Log    *LogHandler
	Health *HealthHandler
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(
	services *Services,
	images *cloudflare.ImagesClient,
	db *gorm.DB,
	redisClient *redis.RedisClient,
	photoRepo repositories.PhotoRepository,
	cfg *config.Config,
) *Handlers {
	rpcHandler := NewRPCHandler(services, images)
	photoHandler := NewPhotoHandler(services.PhotoService)
	authHandler := NewAuthHandler(services.AuthService)
	logHandler := NewLogHandler(cfg)
	healthHandler := NewHealthHandler(db, redisClient, photoRepo)

	return &Handlers{
		RPCHandler:    rpcHandler,
		PhotoHandler:  photoHandler,
		AuthHandler:   authHandler,
		LogHandler:    logHandler,
		HealthHandler: healthHandler,

		// Short accessors
		RPC:    rpcHandler,
		Photo:  photoHandler,
		Auth:   authHandler,
		Log:    logHandler,
		Health: healthHandler,
	}
}
