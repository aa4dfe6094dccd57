package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	MinIO      MinIOConfig
	Generation GenerationConfig
	Artifact   ArtifactConfig
	Worker     WorkerConfig
}

type AppConfig struct {
	Name         string
	Environment  string // development, staging, production
	Port         string
	Version      string
	LogLevel     string        // debug, info, warn, error
	WriteTimeout time.Duration // cascades run inside the request
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Database    string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool // apply the embedded schema at startup
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string // minioadmin
	SecretKey string // minioadmin
	Bucket    string // catalog
	UseSSL    bool   // false for local
}

// GenerationConfig configures the generative provider.
// It is handed to the generation client at construction time.
type GenerationConfig struct {
	ChatProvider    string // openai, anthropic
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	ChatModel       string
	ImageModel      string
	ImageSize       string
	AnthropicAPIKey string
	AnthropicModel  string
	Timeout         time.Duration
	AtomicCascade   bool // roll back the whole cascade on any child failure
}

type ArtifactConfig struct {
	Backend string // fs, minio
	Dir     string // public directory for the fs backend
}

type WorkerConfig struct {
	Concurrency    int
	IllustrateCron string // empty disables the nightly backfill
	HealthPort     string
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:         getEnv("APP_NAME", "Catalog API"),
			Environment:  getEnv("APP_ENV", "development"),
			Port:         getEnv("APP_PORT", "4000"),
			Version:      getEnv("APP_VERSION", "1.0.0"),
			LogLevel:     strings.ToLower(getEnv("LOG_LEVEL", "info")),
			WriteTimeout: getEnvDuration("APP_WRITE_TIMEOUT", 5*time.Minute),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnvInt("DB_PORT", 5432),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", ""),
			Database:    getEnv("DB_NAME", "catalog"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 60),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "catalog"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Generation: GenerationConfig{
			ChatProvider:    strings.ToLower(getEnv("GENERATION_CHAT_PROVIDER", "openai")),
			OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", ""),
			ChatModel:       getEnv("OPENAI_CHAT_MODEL", "gpt-3.5-turbo"),
			ImageModel:      getEnv("OPENAI_IMAGE_MODEL", "dall-e-2"),
			ImageSize:       getEnv("OPENAI_IMAGE_SIZE", "256x256"),
			AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-3-5-sonnet-latest"),
			Timeout:         getEnvDuration("GENERATION_TIMEOUT", 90*time.Second),
			AtomicCascade:   getEnvBool("GENERATION_ATOMIC_CASCADE", false),
		},
		Artifact: ArtifactConfig{
			Backend: strings.ToLower(getEnv("ARTIFACT_BACKEND", "fs")),
			Dir:     getEnv("ARTIFACT_DIR", "./public"),
		},
		Worker: WorkerConfig{
			Concurrency:    getEnvInt("WORKER_CONCURRENCY", 2),
			IllustrateCron: os.Getenv("WORKER_ILLUSTRATE_CRON"),
			HealthPort:     getEnv("WORKER_HEALTH_PORT", "9999"),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	switch c.Generation.ChatProvider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("GENERATION_CHAT_PROVIDER must be openai or anthropic, got %q", c.Generation.ChatProvider)
	}

	switch c.Artifact.Backend {
	case "fs", "minio":
	default:
		return fmt.Errorf("ARTIFACT_BACKEND must be fs or minio, got %q", c.Artifact.Backend)
	}

	if c.Generation.Timeout <= 0 {
		return fmt.Errorf("GENERATION_TIMEOUT must be positive")
	}

	// Production environment phải có JWT secret và provider key
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.Generation.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY must be set in production")
		}
		if c.Generation.ChatProvider == "anthropic" && c.Generation.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY must be set when GENERATION_CHAT_PROVIDER=anthropic")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
