package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds environment driven configuration values.
// Sensitive data should never have defaults inside code and must be provided via env files or the environment.
type AppConfig struct {
	AppPort   string
	GinMode   string
	JWTSecret string
	// Public base URL used when building share links and QR codes
	SiteBaseURL string
	// Database
	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	// Uploaded media
	UploadDir string
	// Lifetime of staged (pre-artwork) uploads before the sweeper reclaims them
	StagedUploadTTLMinutes int
	// View counter worker pool
	ViewWorkerCount int
	ViewQueueSize   int
	// Generative AI collaborators
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	// Rate limiting for auth and AI endpoints
	RateLimitPerMinute int
	AllowedOrigins     []string
	// SMTP for contact form notifications
	SMTPHost           string
	SMTPPort           int
	SMTPUsername       string
	SMTPPassword       string
	SMTPFrom           string
	SMTPFromName       string
	SMTPTLS            bool
	ContactNotifyEmail string
	// Redis for caching and token revocation
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	// Logging configuration
	LogLevel      string
	LogPath       string
	GinPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var cfg AppConfig
var loaded bool

// Load reads configuration from the environment, honoring a local .env file
// when present. It should be called once during boot.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	// Best-effort: a missing .env simply means everything comes from the environment.
	_ = godotenv.Load()

	cfg = AppConfig{
		AppPort:                getEnv("APP_PORT", "8080"),
		GinMode:                getEnv("GIN_MODE", "release"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		SiteBaseURL:            getEnv("SITE_BASE_URL", "http://localhost:8080"),
		DatabaseURI:            os.Getenv("DATABASE_URI"),
		DBHost:                 getEnv("DB_HOST", "127.0.0.1"),
		DBPort:                 getEnv("DB_PORT", "3306"),
		DBUser:                 getEnv("DB_USER", "root"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 getEnv("DB_NAME", "takneek"),
		UploadDir:              getEnv("UPLOAD_DIR", "static/uploads/artworks"),
		StagedUploadTTLMinutes: getEnvInt("STAGED_UPLOAD_TTL_MINUTES", 60),
		ViewWorkerCount:        getEnvInt("VIEW_WORKER_COUNT", 4),
		ViewQueueSize:          getEnvInt("VIEW_QUEUE_SIZE", 1024),
		GeminiAPIKey:           os.Getenv("GEMINI_API_KEY"),
		GeminiModel:            getEnv("GEMINI_MODEL", "gemini-2.5-flash-lite"),
		OpenAIAPIKey:           os.Getenv("OPENAI_API_KEY"),
		RateLimitPerMinute:     getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		AllowedOrigins:         splitAndTrim(getEnv("ALLOWED_ORIGINS", "*")),
		SMTPHost:               os.Getenv("SMTP_HOST"),
		SMTPPort:               getEnvInt("SMTP_PORT", 587),
		SMTPUsername:           os.Getenv("SMTP_USERNAME"),
		SMTPPassword:           os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:               os.Getenv("SMTP_FROM"),
		SMTPFromName:           getEnv("SMTP_FROM_NAME", "Takneek Marketplace"),
		SMTPTLS:                getEnvBool("SMTP_TLS", false),
		ContactNotifyEmail:     os.Getenv("CONTACT_NOTIFY_EMAIL"),
		RedisHost:              getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:              getEnvInt("REDIS_PORT", 6379),
		RedisDB:                getEnvInt("REDIS_DB", 0),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogPath:                getEnv("LOG_PATH", "logs/app.log"),
		GinPath:                getEnv("GIN_LOG_PATH", "logs/gin.log"),
		LogMaxSizeMB:           getEnvInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups:          getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays:          getEnvInt("LOG_MAX_AGE_DAYS", 7),
		LogCompress:            getEnvBool("LOG_COMPRESS", true),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in environment variables")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
