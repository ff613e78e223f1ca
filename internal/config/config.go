package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	QR        QRConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	URL     string
	Timeout time.Duration
}

// AuthConfig selects the token verifier. When Domain and Audience are set the
// service verifies RS256 tokens against the issuer's key set; otherwise a
// non-empty Secret enables the local HS256 verifier.
type AuthConfig struct {
	Domain   string
	Audience string
	Secret   string
}

type QRConfig struct {
	OutputDir string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("DATABASE_TIMEOUT", 10)
	viper.SetDefault("QR_OUTPUT_DIR", "./static/qrcodes")
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			URL:     viper.GetString("DATABASE_URL"),
			Timeout: time.Duration(viper.GetInt("DATABASE_TIMEOUT")) * time.Second,
		},
		Auth: AuthConfig{
			Domain:   viper.GetString("AUTH0_DOMAIN"),
			Audience: viper.GetString("API_AUDIENCE"),
			Secret:   os.Getenv("JWT_SECRET"),
		},
		QR: QRConfig{
			OutputDir: viper.GetString("QR_OUTPUT_DIR"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	// Basic validation
	if cfg.Auth.Domain == "" && cfg.Auth.Secret == "" {
		log.Println("WARNING: neither AUTH0_DOMAIN nor JWT_SECRET is set; all requests will be rejected unless ALLOW_INSECURE_TOKEN=true")
	}

	return cfg, nil
}
