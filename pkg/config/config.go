package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Assembly  AssemblyConfig
	Groq      GroqConfig
	Pipeline  PipelineConfig
	Extractor ExtractorConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Type            string // "minio" or "s3"
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// AssemblyConfig holds AssemblyAI configuration
type AssemblyConfig struct {
	APIKey      string
	PollTimeout time.Duration
}

// GroqConfig holds Groq LLM configuration
type GroqConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// PipelineConfig holds ingestion pipeline configuration
type PipelineConfig struct {
	MaxFileSize  int64 // bytes
	QueueSize    int
	StageTimeout time.Duration
	UploadDir    string
}

// ExtractorConfig holds action extraction configuration
type ExtractorConfig struct {
	ConfidenceThreshold float64
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "minute_tracker"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Type:            getEnv("STORAGE_TYPE", "minio"),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "minute-tracker"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
		},
		Assembly: AssemblyConfig{
			APIKey:      getEnv("ASSEMBLYAI_API_KEY", ""),
			PollTimeout: getEnvAsDuration("ASSEMBLYAI_POLL_TIMEOUT", "15m"),
		},
		Groq: GroqConfig{
			APIKey:  getEnv("GROQ_API_KEY", ""),
			Model:   getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
			BaseURL: getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			Timeout: getEnvAsDuration("GROQ_TIMEOUT", "2m"),
		},
		Pipeline: PipelineConfig{
			MaxFileSize:  getEnvAsInt64("MAX_FILE_SIZE", 500*1024*1024),
			QueueSize:    getEnvAsInt("INGEST_QUEUE_SIZE", 16),
			StageTimeout: getEnvAsDuration("STAGE_TIMEOUT", "20m"),
			UploadDir:    getEnv("UPLOAD_DIR", "/tmp/minute-tracker/uploads"),
		},
		Extractor: ExtractorConfig{
			ConfidenceThreshold: getEnvAsFloat("ACTION_CONFIDENCE_THRESHOLD", 0.5),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Assembly.APIKey == "" {
		return fmt.Errorf("ASSEMBLYAI_API_KEY is required")
	}
	if c.Groq.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}
	if c.Pipeline.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive")
	}
	if c.Extractor.ConfidenceThreshold < 0 || c.Extractor.ConfidenceThreshold > 1 {
		return fmt.Errorf("ACTION_CONFIDENCE_THRESHOLD must be in [0,1]")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
