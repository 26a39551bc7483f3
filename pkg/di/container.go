package di

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"catsofasia/application/serviceimpl"
	"catsofasia/domain/models"
	"catsofasia/domain/repositories"
	"catsofasia/domain/services"
	"catsofasia/infrastructure/cloudflare"
	"catsofasia/infrastructure/geocoder"
	"catsofasia/infrastructure/mastodon"
	"catsofasia/infrastructure/memstore"
	"catsofasia/infrastructure/postgres"
	"catsofasia/infrastructure/redis"
	"catsofasia/interfaces/api/handlers"
	"catsofasia/pkg/config"
	"catsofasia/pkg/logger"
	"catsofasia/pkg/scheduler"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *redis.RedisClient
	EventScheduler scheduler.EventScheduler
	ImagesClient   *cloudflare.ImagesClient
	Geocoder       *geocoder.GoogleClient
	Mastodon       *mastodon.Client

	redisAvailable bool

	// Repositories
	LocationRepository    repositories.LocationRepository
	CoordinatesRepository repositories.CoordinatesRepository
	PhotoRepository       repositories.PhotoRepository
	PlatformRepository    repositories.PlatformRepository
	PostRepository        repositories.PostRepository
	UserRepository        repositories.UserRepository

	// Services
	PhotoService    services.PhotoService
	LocationService services.LocationService
	PostingService  services.PostingService
	AuthService     services.AuthService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.seedData(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Startup("config_loaded", "Configuration loaded", nil)
	return nil
}

func (c *Container) initInfrastructure() error {
	// Initialize Database
	dbConfig := postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Startup("db_connected", "Database connected", nil)

	// Run migrations
	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Startup("db_migrated", "Database migrated", nil)

	// Initialize Redis
	c.RedisClient = redis.NewRedisClient(c.Config.Redis)
	if err := c.RedisClient.Ping(context.Background()); err != nil {
		logger.StartupWarn("redis_connection_failed", "Redis connection failed", map[string]interface{}{"error": err.Error()})
	} else {
		c.redisAvailable = true
		logger.Startup("redis_connected", "Redis connected", nil)
	}

	// Initialize Cloudflare Images client
	c.ImagesClient = cloudflare.NewImagesClient(cloudflare.ImagesConfig{
		Domain:      c.Config.Cloudflare.ImagesDomain,
		AccountHash: c.Config.Cloudflare.ImagesAccountHash,
		AccountID:   c.Config.Cloudflare.ImagesAccountID,
		APIKey:      c.Config.Cloudflare.ImagesAPIKey,
		APIBaseURL:  c.Config.Cloudflare.APIBaseURL,
	})
	logger.Startup("images_client_initialized", "Cloudflare Images client initialized", nil)

	// Initialize geocoding client
	c.Geocoder = geocoder.NewGoogleClient(geocoder.GoogleConfig{
		APIKey:  c.Config.GoogleMaps.APIKey,
		BaseURL: c.Config.GoogleMaps.BaseURL,
	})
	if c.Config.GoogleMaps.APIKey == "" {
		logger.StartupWarn("geocoder_not_configured", "Google Maps API key not configured", nil)
	}

	// Initialize Mastodon client
	c.Mastodon = mastodon.NewClient(mastodon.Config{
		BaseURL:     c.Config.Mastodon.BaseURL,
		AccessToken: c.Config.Mastodon.AccessToken,
	})
	if c.Config.Mastodon.BaseURL == "" {
		logger.StartupWarn("mastodon_not_configured", "Mastodon base URL not configured", nil)
	}

	return nil
}

func (c *Container) initRepositories() error {
	c.LocationRepository = postgres.NewLocationRepository(c.DB)
	c.CoordinatesRepository = postgres.NewCoordinatesRepository(c.DB)
	c.PhotoRepository = postgres.NewPhotoRepository(c.DB)
	c.PlatformRepository = postgres.NewPlatformRepository(c.DB)
	c.PostRepository = postgres.NewPostRepository(c.DB)
	c.UserRepository = postgres.NewUserRepository(c.DB)
	logger.Startup("repositories_initialized", "Repositories initialized", nil)
	return nil
}

func (c *Container) initServices() error {
	// CSRF tokens live in redis so they survive restarts and are shared
	// across replicas. Without redis the tokens fall back to process
	// memory; the mutating RPC methods keep working either way.
	var csrfStore services.CSRFStore = redis.NewCSRFStore(c.RedisClient)
	if !c.redisAvailable {
		csrfStore = memstore.NewCSRFStore()
		logger.StartupWarn("csrf_store_fallback", "Redis unavailable, CSRF tokens held in process memory", nil)
	}

	c.LocationService = serviceimpl.NewLocationService(c.CoordinatesRepository, c.Geocoder)
	c.PhotoService = serviceimpl.NewPhotoService(c.PhotoRepository, c.CoordinatesRepository, c.LocationRepository, c.ImagesClient)
	c.PostingService = serviceimpl.NewPostingService(c.PhotoRepository, c.PlatformRepository, c.PostRepository, c.ImagesClient, c.ImagesClient, c.Mastodon)
	c.AuthService = serviceimpl.NewAuthService(c.UserRepository, csrfStore, c.Config.JWT)

	logger.Startup("services_initialized", "Services initialized", nil)
	return nil
}

// seedData makes sure the posting platform and the uploader account
// exist.
func (c *Container) seedData() error {
	ctx := context.Background()

	platform, err := c.PlatformRepository.Ensure(ctx, "Mastodon", c.Config.Mastodon.ProfileURL)
	if err != nil {
		return err
	}
	logger.Startup("platform_seeded", "Platform seeded", map[string]interface{}{"platform": platform.Name})

	if c.Config.Uploader.Username != "" && c.Config.Uploader.Password != "" {
		existing, err := c.UserRepository.GetByUsername(ctx, c.Config.Uploader.Username)
		if err != nil {
			return err
		}
		if existing == nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(c.Config.Uploader.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user := &models.User{
				ID:           uuid.New(),
				Username:     c.Config.Uploader.Username,
				PasswordHash: string(hash),
				Role:         "uploader",
			}
			if err := c.UserRepository.Create(ctx, user); err != nil {
				return err
			}
			logger.Startup("uploader_seeded", "Uploader account created", map[string]interface{}{"username": user.Username})
		}
	}

	return nil
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()
	c.EventScheduler.Start()

	if c.Config.Posting.Enabled {
		c.schedulePosting()
	} else {
		logger.Startup("posting_disabled", "Scheduled posting is disabled", nil)
	}

	return nil
}

func (c *Container) schedulePosting() {
	platformName := c.Config.Posting.Platform
	err := c.EventScheduler.AddJob("daily_post", c.Config.Posting.CronExpr, func() {
		ctx := context.Background()
		if err := c.PostingService.PostRandomUnused(ctx, platformName); err != nil {
			logger.PostingError("scheduled_post", "Scheduled post failed", err, map[string]interface{}{
				"platform": platformName,
			})
		}
	})
	if err != nil {
		logger.StartupWarn("posting_schedule_failed", "Failed to schedule posting job", map[string]interface{}{"error": err.Error()})
		return
	}
	logger.Startup("posting_scheduled", "Posting job scheduled", map[string]interface{}{
		"cron_expr": c.Config.Posting.CronExpr,
		"platform":  platformName,
	})
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetHandlerServices bundles the services handlers depend on.
func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		PhotoService:    c.PhotoService,
		LocationService: c.LocationService,
		PostingService:  c.PostingService,
		AuthService:     c.AuthService,
	}
}

// Cleanup closes all connections
func (c *Container) Cleanup() error {
	if c.EventScheduler != nil {
		c.EventScheduler.Stop()
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.StartupWarn("redis_close_failed", "Failed to close redis", map[string]interface{}{"error": err.Error()})
		}
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.StartupWarn("db_close_failed", "Failed to close database", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	return nil
}
