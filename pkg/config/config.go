package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Admin      AdminConfig
	Uploader   UploaderConfig
	Cloudflare CloudflareConfig
	GoogleMaps GoogleMapsConfig
	Mastodon   MastodonConfig
	Posting    PostingConfig
	RateLimit  RateLimitConfig
}

type AppConfig struct {
	Name string
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret   string
	TTLHours int
}

type AdminConfig struct {
	Token string // Separate admin token for log access (falls back to JWT secret if not set)
}

// UploaderConfig seeds the uploader account on first start.
type UploaderConfig struct {
	Username string
	Password string
}

type CloudflareConfig struct {
	ImagesDomain      string // delivery hostname, e.g. catsof.asia
	ImagesAccountHash string // account hash in delivery URLs
	ImagesAccountID   string // account id in the direct-upload API URL
	ImagesAPIKey      string
	APIBaseURL        string
}

type GoogleMapsConfig struct {
	APIKey  string
	BaseURL string
}

type MastodonConfig struct {
	BaseURL     string
	AccessToken string
	ProfileURL  string // seeded as the platform's profile URL
}

// PostingConfig controls the scheduled random-photo poster.
type PostingConfig struct {
	Enabled  bool
	CronExpr string
	Platform string
}

type RateLimitConfig struct {
	Enabled           bool
	MaxRequests       int
	WindowSeconds     int
	AuthMaxRequests   int
	AuthWindowSeconds int
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists (optional for production)
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	jwtTTL, _ := strconv.Atoi(getEnv("JWT_TTL_HOURS", "24"))
	rlMax, _ := strconv.Atoi(getEnv("RATE_LIMIT_MAX_REQUESTS", "120"))
	rlWindow, _ := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_SECONDS", "60"))
	rlAuthMax, _ := strconv.Atoi(getEnv("RATE_LIMIT_AUTH_MAX_REQUESTS", "10"))
	rlAuthWindow, _ := strconv.Atoi(getEnv("RATE_LIMIT_AUTH_WINDOW_SECONDS", "60"))

	config := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "Cats of Asia"),
			Port: getEnv("APP_PORT", "3000"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "catsofasia"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", "your-secret-key"),
			TTLHours: jwtTTL,
		},
		Admin: AdminConfig{
			Token: getEnv("ADMIN_TOKEN", ""), // Will fall back to JWT_SECRET in handler if empty
		},
		Uploader: UploaderConfig{
			Username: getEnv("UPLOADER_USERNAME", ""),
			Password: getEnv("UPLOADER_PASSWORD", ""),
		},
		Cloudflare: CloudflareConfig{
			ImagesDomain:      getEnv("CLOUDFLARE_IMAGES_DOMAIN", ""),
			ImagesAccountHash: getEnv("CLOUDFLARE_IMAGES_ACCOUNT_HASH", ""),
			ImagesAccountID:   getEnv("CLOUDFLARE_IMAGES_ACCOUNT_ID", ""),
			ImagesAPIKey:      getEnv("CLOUDFLARE_IMAGES_API_KEY", ""),
			APIBaseURL:        getEnv("CLOUDFLARE_API_BASE_URL", "https://api.cloudflare.com"),
		},
		GoogleMaps: GoogleMapsConfig{
			APIKey:  getEnv("GOOGLE_MAPS_API_KEY", ""),
			BaseURL: getEnv("GOOGLE_MAPS_BASE_URL", "https://maps.googleapis.com"),
		},
		Mastodon: MastodonConfig{
			BaseURL:     getEnv("MASTODON_BASE_URL", ""),
			AccessToken: getEnv("MASTODON_ACCESS_TOKEN", ""),
			ProfileURL:  getEnv("MASTODON_PROFILE_URL", "https://mastodon.social/@catsofasia"),
		},
		Posting: PostingConfig{
			Enabled:  getEnv("POSTING_ENABLED", "true") == "true",
			CronExpr: getEnv("POSTING_CRON", "0 9 * * *"),
			Platform: getEnv("POSTING_PLATFORM", "mastodon"),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getEnv("RATE_LIMIT_ENABLED", "true") == "true",
			MaxRequests:       rlMax,
			WindowSeconds:     rlWindow,
			AuthMaxRequests:   rlAuthMax,
			AuthWindowSeconds: rlAuthWindow,
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
