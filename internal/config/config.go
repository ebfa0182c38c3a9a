package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken    string `validate:"required"`
	BotPassword string `validate:"required"`
	Database    DatabaseConfig

	// VocabAPIURL is the generative text endpoint used to fetch new
	// vocabulary. Leaving it empty disables topic fetching.
	VocabAPIURL string
	CSVPath     string `validate:"required"`

	QuizDistractors      int `validate:"min=1,max=5"`
	MatchTimeLimit       int `validate:"min=10"`
	FetchCooldownSeconds int `validate:"min=0"`
	ResultRetentionDays  int `validate:"min=1"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string `validate:"required"`
	Port     string `validate:"required"`
	Name     string `validate:"required"`
	User     string `validate:"required"`
	Password string `validate:"required"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		BotPassword: os.Getenv("BOT_PASSWORD"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "idiomastery"),
			User:     getEnv("DB_USER", "idiomastery"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		VocabAPIURL: os.Getenv("VOCAB_API_URL"),
		CSVPath:     getEnv("CSV_PATH", "assets/englishspanish.csv"),
	}

	var err error
	if cfg.QuizDistractors, err = getEnvInt("QUIZ_DISTRACTORS", 2); err != nil {
		return nil, err
	}
	if cfg.MatchTimeLimit, err = getEnvInt("MATCH_TIME_LIMIT_SECONDS", 60); err != nil {
		return nil, err
	}
	if cfg.FetchCooldownSeconds, err = getEnvInt("FETCH_COOLDOWN_SECONDS", 60); err != nil {
		return nil, err
	}
	if cfg.ResultRetentionDays, err = getEnvInt("RESULT_RETENTION_DAYS", 365); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
