package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort string

	// Database settings. DatabaseType selects the dialect (sqlite, postgres, mysql);
	// DatabaseURL is used for postgres/mysql, DatabasePath for sqlite.
	DatabaseType   string
	DatabaseURL    string
	DatabasePath   string
	MigrationsPath string

	// Auth settings
	SessionDuration time.Duration
	JWTSecret       string
	JWTDuration     time.Duration

	// OAuth sign-in
	GoogleClientID       string
	GoogleClientSecret   string
	OAuthRedirectBaseURL string

	// Email (AWS SES). Disabled when SESFromEmail is empty.
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string

	// Puzzle engine settings
	WordListPath     string
	PuzzleEpoch      string // YYYY-MM-DD, day 0 of the schedule
	BaseScore        int
	AttemptPenalty   int
	MinScore         int
	MaxAttempts      int
	StrictDictionary bool

	// Rate limiting for auth and guess endpoints
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:    getEnv("DB_URL", ""),
		DatabasePath:   getEnv("DB_PATH", "./boundle.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		SessionDuration: getEnvDuration("SESSION_DURATION", 24*time.Hour),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTDuration:     getEnvDuration("JWT_DURATION", 24*time.Hour),

		GoogleClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		OAuthRedirectBaseURL: getEnv("OAUTH_REDIRECT_BASE_URL", "http://localhost:8080"),

		AWSRegion:    getEnv("AWS_REGION", "eu-central-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "Boundle"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),

		WordListPath:     getEnv("WORD_LIST_PATH", "./data/words.json"),
		PuzzleEpoch:      getEnv("PUZZLE_EPOCH", "2022-01-01"),
		BaseScore:        getEnvInt("PUZZLE_BASE_SCORE", 100),
		AttemptPenalty:   getEnvInt("PUZZLE_ATTEMPT_PENALTY", 10),
		MinScore:         getEnvInt("PUZZLE_MIN_SCORE", 10),
		MaxAttempts:      getEnvInt("PUZZLE_MAX_ATTEMPTS", 6),
		StrictDictionary: getEnvBool("PUZZLE_STRICT_DICTIONARY", true),

		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 30),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// getEnvBool reads a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return b
}

// getEnvDuration reads a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
