package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string `default:"development"`
	Port   string `default:"8082"`

	DatabaseURL string
	DBHost      string `default:"localhost"`
	DBPort      string `default:"5432"`
	DBUser      string `default:"postgres"`
	DBPassword  string `default:"postgres"`
	DBName      string `default:"storefront"`
	DBSSLMode   string `default:"disable"`
	MaxConns    int32  `default:"25"`
	MinConns    int32  `default:"2"`

	JWTSecret string        `default:"secret"`
	JWTExpiry time.Duration `default:"24h"`

	RedisURL      string
	RedisAddr     string        `default:"localhost:6379"`
	RedisPassword string
	CacheTTL      time.Duration `default:"5m"`

	OriginURL    string
	AssetBaseURL string `default:"/uploads"`

	CloudinaryURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	SMTPHost string
	SMTPPort int `default:"587"`
	SMTPUser string
	SMTPPass string
	SMTPFrom string `default:"no-reply@storefront.local"`
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	AppConfig = FromEnv()

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
}

// FromEnv builds a Config from struct defaults overridden by the process
// environment.
func FromEnv() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		log.Fatalf("Failed to apply config defaults: %v", err)
	}

	cfg.AppEnv = getEnv("APP_ENV", cfg.AppEnv)
	cfg.Port = getEnv("APP_PORT", getEnv("PORT", cfg.Port))

	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBPort = getEnv("DB_PORT", cfg.DBPort)
	cfg.DBUser = getEnv("DB_USER", cfg.DBUser)
	cfg.DBPassword = getEnv("DB_PASSWORD", cfg.DBPassword)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.DBSSLMode = getEnv("DB_SSLMODE", cfg.DBSSLMode)
	cfg.MaxConns = int32(getEnvInt("DB_MAX_CONNS", int(cfg.MaxConns)))
	cfg.MinConns = int32(getEnvInt("DB_MIN_CONNS", int(cfg.MinConns)))

	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.JWTExpiry = getEnvDuration("JWT_EXPIRY", cfg.JWTExpiry)

	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.CacheTTL = getEnvDuration("CACHE_TTL", cfg.CacheTTL)

	cfg.OriginURL = getEnv("ORIGIN_URL", cfg.OriginURL)
	cfg.AssetBaseURL = getEnv("ASSET_BASE_URL", cfg.AssetBaseURL)

	cfg.CloudinaryURL = getEnv("CLOUDINARY_URL", cfg.CloudinaryURL)
	cfg.CloudinaryCloudName = getEnv("CLOUDINARY_CLOUD_NAME", cfg.CloudinaryCloudName)
	cfg.CloudinaryAPIKey = getEnv("CLOUDINARY_API_KEY", cfg.CloudinaryAPIKey)
	cfg.CloudinaryAPISecret = getEnv("CLOUDINARY_API_SECRET", cfg.CloudinaryAPISecret)

	cfg.SMTPHost = getEnv("SMTP_HOST", cfg.SMTPHost)
	cfg.SMTPPort = getEnvInt("SMTP_PORT", cfg.SMTPPort)
	cfg.SMTPUser = getEnv("SMTP_USER", cfg.SMTPUser)
	cfg.SMTPPass = getEnv("SMTP_PASS", cfg.SMTPPass)
	cfg.SMTPFrom = getEnv("SMTP_FROM", cfg.SMTPFrom)

	return cfg
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: %s=%q is not a duration, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
