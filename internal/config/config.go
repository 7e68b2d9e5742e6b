package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	LLM       LLMConfig
	Qdrant    QdrantConfig
	Jobs      JobsConfig
	Interview InterviewConfig
	Storage   StorageConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type AuthConfig struct {
	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration
}

type LLMConfig struct {
	DefaultProvider string
	GeminiAPIKey    string
	OpenAIAPIKey    string
	GroqAPIKey      string
	GroqBaseURL     string
	MaxRetries      int
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type JobsConfig struct {
	AdzunaAppID   string
	AdzunaAppKey  string
	AdzunaBaseURL string
	JoobleAPIKey  string
	JoobleBaseURL string
}

type InterviewConfig struct {
	MaxQuestions     int
	SessionRetention time.Duration
	SweepSchedule    string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resumate"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
			JWTIssuer: getEnv("JWT_ISSUER", "resumate-api"),
			JWTTTL:    getEnvAsDuration("JWT_TTL", "24h"),
		},
		LLM: LLMConfig{
			DefaultProvider: getEnv("LLM_PROVIDER", "groq"),
			GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
			OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
			GroqAPIKey:      getEnv("GROQ_API_KEY", ""),
			GroqBaseURL:     getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			MaxRetries:      getEnvAsInt("LLM_MAX_RETRIES", 3),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "resumate_resumes"),
		},
		Jobs: JobsConfig{
			AdzunaAppID:   getEnv("ADZUNA_APP_ID", ""),
			AdzunaAppKey:  getEnv("ADZUNA_APP_KEY", ""),
			AdzunaBaseURL: getEnv("ADZUNA_BASE_URL", "https://api.adzuna.com/v1/api"),
			JoobleAPIKey:  getEnv("JOOBLE_API_KEY", ""),
			JoobleBaseURL: getEnv("JOOBLE_BASE_URL", "https://jooble.org/api"),
		},
		Interview: InterviewConfig{
			MaxQuestions:     getEnvAsInt("INTERVIEW_MAX_QUESTIONS", 20),
			SessionRetention: getEnvAsDuration("INTERVIEW_SESSION_RETENTION", "2h"),
			SweepSchedule:    getEnv("INTERVIEW_SWEEP_SCHEDULE", "@every 15m"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

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

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
