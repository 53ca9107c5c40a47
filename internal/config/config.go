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
	JWT      JWTConfig
	Auth     AuthConfig
	Email    EmailConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	LogLevel     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  string
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
	PrivateKeyPath     string
	PublicKeyPath      string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	Issuer             string
}

type AuthConfig struct {
	AdminLogin                string
	AdminPassword             string
	EnforceConfirmationExpiry bool
	RateLimitMax              int
	RateLimitWindow           time.Duration
	SecureCookies             bool
	Argon2Memory              uint32
	Argon2Iterations          uint32
}

type EmailConfig struct {
	Enabled         bool
	APIKey          string
	FromEmail       string
	FromName        string
	ConfirmationURL string
	RecoveryURL     string
}

func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			CORSOrigins:  getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "blog"),
			Password: getEnv("DB_PASSWORD", "blog"),
			DBName:   getEnv("DB_NAME", "blogdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			PrivateKeyPath:     getEnv("JWT_PRIVATE_KEY_PATH", "./keys/private.pem"),
			PublicKeyPath:      getEnv("JWT_PUBLIC_KEY_PATH", "./keys/public.pem"),
			AccessTokenExpiry:  getDurationEnv("JWT_ACCESS_EXPIRY", 10*time.Minute),
			RefreshTokenExpiry: getDurationEnv("JWT_REFRESH_EXPIRY", 20*time.Minute),
			Issuer:             getEnv("JWT_ISSUER", "blog-service"),
		},
		Auth: AuthConfig{
			AdminLogin:                getEnv("ADMIN_LOGIN", "admin"),
			AdminPassword:             getEnv("ADMIN_PASSWORD", "qwerty"),
			EnforceConfirmationExpiry: getBoolEnv("AUTH_ENFORCE_CONFIRMATION_EXPIRY", false),
			RateLimitMax:              getIntEnv("AUTH_RATE_LIMIT_MAX", 5),
			RateLimitWindow:           getDurationEnv("AUTH_RATE_LIMIT_WINDOW", 10*time.Second),
			SecureCookies:             getBoolEnv("AUTH_SECURE_COOKIES", true),
			Argon2Memory:              uint32(getIntEnv("AUTH_ARGON2_MEMORY_KB", 64*1024)),
			Argon2Iterations:          uint32(getIntEnv("AUTH_ARGON2_ITERATIONS", 3)),
		},
		Email: EmailConfig{
			Enabled:         getBoolEnv("EMAIL_ENABLED", false),
			APIKey:          getEnv("RESEND_API_KEY", ""),
			FromEmail:       getEnv("EMAIL_FROM", "noreply@blog-service.dev"),
			FromName:        getEnv("EMAIL_FROM_NAME", "Blog Service"),
			ConfirmationURL: getEnv("EMAIL_CONFIRMATION_URL", "https://somesite.com/confirm-email"),
			RecoveryURL:     getEnv("EMAIL_RECOVERY_URL", "https://somesite.com/password-recovery"),
		},
	}

	if cfg.JWT.RefreshTokenExpiry <= 0 || cfg.JWT.AccessTokenExpiry <= 0 {
		return nil, fmt.Errorf("token expiry must be positive")
	}

	if strings.Contains(cfg.Server.CORSOrigins, "*") {
		return nil, fmt.Errorf("CORS_ALLOW_ORIGINS must list explicit origins, credentials are allowed")
	}

	if cfg.Email.Enabled && cfg.Email.APIKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY is required when EMAIL_ENABLED=true")
	}

	return cfg, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
