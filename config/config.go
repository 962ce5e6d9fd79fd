package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	LLMProviderGemini = "gemini"
	LLMProviderOpenAI = "openai"
)

type Config struct {
	Port string
	Env  string

	// Document store. The scheme of DatabaseURL selects the backend:
	// mongodb:// and mongodb+srv:// use MongoDB, postgres:// uses Postgres,
	// sqlite:// and file: use an embedded SQLite database.
	DatabaseURL   string
	MongoDatabase string
	StoreTimeout  time.Duration

	// Optional read-through cache for single schema lookups.
	RedisAddr     string
	RedisPort     string
	RedisPassword string

	LLMProvider       string
	GeminiAPIKey      string
	GeminiModel       string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAIModel       string
	GenerationTimeout time.Duration

	CORSOrigins []string

	// Log configuration
	LogLevel      string
	LogFilename   string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int
	LogCompress   bool
}

// IsDevelopment reports whether raw error details may be returned to clients.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func (c *Config) RedisFullAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisAddr, c.RedisPort)
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		// Ignore error if .env file is not found
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg := &Config{
		Port:          getEnv("PORT", "3001"),
		Env:           getEnv("APP_ENV", getEnv("NODE_ENV", "production")),
		DatabaseURL:   getEnv("DATABASE_URL", getEnv("MONGODB_URI", "mongodb://localhost:27017")),
		MongoDatabase: getEnv("MONGODB_DATABASE", "test"),
		StoreTimeout:  getEnvAsDuration("STORE_TIMEOUT", 10*time.Second),

		RedisAddr:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		LLMProvider:       strings.ToLower(getEnv("LLM_PROVIDER", LLMProviderGemini)),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY")),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GenerationTimeout: getEnvAsDuration("GENERATION_TIMEOUT", 60*time.Second),

		CORSOrigins: getEnvAsList("CORS_ORIGINS"),

		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		LogFilename:   getEnv("LOG_FILENAME", "logs/app.log"),
		LogMaxSize:    getEnvAsInt("LOG_MAX_SIZE", 100),
		LogMaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
		LogMaxAge:     getEnvAsInt("LOG_MAX_AGE", 28),
		LogCompress:   getEnvAsBool("LOG_COMPRESS", true),
	}

	if cfg.LLMProvider != LLMProviderGemini && cfg.LLMProvider != LLMProviderOpenAI {
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.LLMProvider)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go duration strings ("30s") or a plain number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil && value > 0 {
		return value
	}
	if seconds, err := strconv.Atoi(valueStr); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	var values []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
