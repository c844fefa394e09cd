package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	PublicURL     string // Base for _links hrefs
	DBUrl         string
	JWTSecret     string
	AllowedOrigin string
	// DB Config
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration
	// Cache
	CacheZoneTTL        time.Duration
	CacheMethodTypesTTL time.Duration
	// Method type catalog (YAML/JSON, optional)
	MethodTypesFile string
	// Events
	RedisURL       string
	EventsChannel  string
	WebhookURL     string
	WebhookSecret  string
	WebhookTimeout time.Duration
	// R2 Storage (deleted method archive)
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2BucketName      string
	R2PublicURL       string
	R2UploadTimeout   time.Duration
	ArchivePrefix     string
	// HTTP
	RateLimitRPS    float64
	RateLimitBurst  int
	ShutdownTimeout time.Duration
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: .env for local dev, system env vars otherwise
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		PublicURL:     getEnv("PUBLIC_URL", "http://localhost:8080"),
		DBUrl:         getEnv("DB_DSN", ""),
		JWTSecret:     getEnv("JWT_SECRET", "default_secret_CHANGE_ME"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),

		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 20),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 2),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*15),

		// Cache defaults: 5m zones, 1h method types
		CacheZoneTTL:        getDurationEnv("CACHE_ZONE_TTL", 5*time.Minute),
		CacheMethodTypesTTL: getDurationEnv("CACHE_METHOD_TYPES_TTL", time.Hour),

		MethodTypesFile: getEnv("METHOD_TYPES_FILE", ""),

		RedisURL:       getEnv("REDIS_URL", ""),
		EventsChannel:  getEnv("EVENTS_CHANNEL", "shipping.zone_methods"),
		WebhookURL:     getEnv("WEBHOOK_URL", ""),
		WebhookSecret:  getEnv("WEBHOOK_SECRET", ""),
		WebhookTimeout: getDurationEnv("WEBHOOK_TIMEOUT", 10*time.Second),

		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2AccessKeySecret: getEnv("R2_ACCESS_KEY_SECRET", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:       getEnv("R2_PUBLIC_URL", ""),
		R2UploadTimeout:   getDurationEnv("R2_UPLOAD_TIMEOUT", 30*time.Second),
		ArchivePrefix:     getEnv("ARCHIVE_PREFIX", "shipping-methods/deleted"),

		RateLimitRPS:    getFloat64Env("RATE_LIMIT_RPS", 50),
		RateLimitBurst:  getIntEnv("RATE_LIMIT_BURST", 100),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 5*time.Second),
	}

	cfg.Validate()
	return cfg
}

func (c *Config) Validate() {
	if c.DBUrl == "" {
		log.Println("WARNING: DB_DSN not set, using in-memory shipping store (data is lost on restart)")
	}
	if c.JWTSecret == "default_secret_CHANGE_ME" {
		log.Println("WARNING: Using default JWT secret. Setting up for failure in production.")
	}
	if c.WebhookURL != "" && c.WebhookSecret == "" {
		log.Println("WARNING: WEBHOOK_URL set without WEBHOOK_SECRET, deliveries will be unsigned")
	}
}

// ArchiveEnabled reports whether deleted-method snapshots should be shipped to R2.
func (c *Config) ArchiveEnabled() bool {
	return c.R2BucketName != "" && c.R2AccountID != ""
}
