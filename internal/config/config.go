package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Email    EmailConfig
	Gate     GateConfig
	Vision   VisionConfig
}

type ServerConfig struct {
	Port            string
	Env             string // dev or prod
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	TrustedOrigins  []string // CORS allowed origins for cookie auth
}

type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	ChannelBinding string // "require" for Neon DB, empty for local
	AutoMigrate    bool   // apply pending migrations on startup
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	// TokenStrategy selects the access token format: "paseto" or "jwt"
	TokenStrategy string
	// TokenKey must be 32 bytes (PASETO v4.local key or HS256 secret)
	TokenKey             []byte
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	FrontendURL  string // Frontend URL for verification links
}

type GateConfig struct {
	// CacheBackend is "redis" or "memory"
	CacheBackend string
	// FailurePolicy is "incomplete" or "loading"
	FailurePolicy string
	LookupTimeout time.Duration
}

type VisionConfig struct {
	// APIKey may be empty; the AI endpoints then answer 500 per request
	APIKey        string
	AnalysisModel string
	ImageModel    string
}

// Load reads configuration from environment variables, after an optional .env file
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Env:             getEnv("APP_ENV", "dev"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
			TrustedOrigins:  getSliceEnv("TRUSTED_ORIGINS", []string{"http://localhost:5173"}),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			DBName:         getEnv("DB_NAME", "wardrobe"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			ChannelBinding: getEnv("DB_CHANNEL_BINDING", ""),
			AutoMigrate:    getBoolEnv("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			TokenStrategy:        getEnv("AUTH_TOKEN_STRATEGY", "paseto"),
			TokenKey:             []byte(getEnv("AUTH_TOKEN_KEY", "")),
			AccessTokenDuration:  getDurationEnv("ACCESS_TOKEN_DURATION", 15*time.Minute),
			RefreshTokenDuration: getDurationEnv("REFRESH_TOKEN_DURATION", 7*24*time.Hour),
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnv("SMTP_PORT", "587"),
			SMTPUser:     getEnv("SMTP_USER", ""),
			SMTPPassword: getEnv("SMTP_PASS", ""),
			FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:5173"),
		},
		Gate: GateConfig{
			CacheBackend:  getEnv("GATE_CACHE_BACKEND", "redis"),
			FailurePolicy: getEnv("GATE_FAILURE_POLICY", "incomplete"),
			LookupTimeout: getDurationEnv("GATE_LOOKUP_TIMEOUT", 5*time.Second),
		},
		Vision: VisionConfig{
			APIKey:        getEnv("GEMINI_API_KEY", ""),
			AnalysisModel: getEnv("VISION_ANALYSIS_MODEL", "gemini-2.5-flash"),
			ImageModel:    getEnv("VISION_IMAGE_MODEL", "gemini-2.5-flash-image"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	if len(c.Auth.TokenKey) != 32 {
		return fmt.Errorf("AUTH_TOKEN_KEY must be exactly 32 bytes, got %d", len(c.Auth.TokenKey))
	}

	switch c.Auth.TokenStrategy {
	case "paseto", "jwt":
	default:
		return fmt.Errorf("AUTH_TOKEN_STRATEGY must be paseto or jwt, got %q", c.Auth.TokenStrategy)
	}

	switch c.Gate.CacheBackend {
	case "redis", "memory":
	default:
		return fmt.Errorf("GATE_CACHE_BACKEND must be redis or memory, got %q", c.Gate.CacheBackend)
	}

	if c.Gate.LookupTimeout <= 0 {
		return fmt.Errorf("GATE_LOOKUP_TIMEOUT must be positive, got %s", c.Gate.LookupTimeout)
	}

	switch c.Gate.FailurePolicy {
	case "incomplete", "loading":
	default:
		return fmt.Errorf("GATE_FAILURE_POLICY must be incomplete or loading, got %q", c.Gate.FailurePolicy)
	}

	return nil
}

func (c *DatabaseConfig) ConnectionString() string {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)

	if c.ChannelBinding != "" {
		connStr += fmt.Sprintf(" channel_binding=%s", c.ChannelBinding)
	}

	return connStr
}

// URL returns the connection string in URL form, as golang-migrate expects
func (c *DatabaseConfig) URL() string {
	url := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)

	if c.ChannelBinding != "" {
		url += "&channel_binding=" + c.ChannelBinding
	}

	return url
}

// Address returns Redis connection address (host:port)
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDevelopment returns true if the environment is set to dev
func (c *ServerConfig) IsDevelopment() bool {
	return c.Env == "dev"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

// getDurationEnv reads whole seconds
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	seconds, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return time.Duration(seconds) * time.Second
}

func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}
