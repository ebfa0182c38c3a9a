package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue int
		setEnv       bool
		envValue     string
		expected     int
		expectError  bool
	}{
		{
			name:         "env variable set",
			key:          "TEST_INT_KEY",
			defaultValue: 2,
			setEnv:       true,
			envValue:     "5",
			expected:     5,
		},
		{
			name:         "env variable not set",
			key:          "TEST_INT_KEY_NOT_SET",
			defaultValue: 60,
			expected:     60,
		},
		{
			name:        "not an integer",
			key:         "TEST_INT_KEY_BAD",
			setEnv:      true,
			envValue:    "soon",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			result, err := getEnvInt(tt.key, tt.defaultValue)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

func TestLoad(t *testing.T) {
	clearEnv := func() {
		for _, key := range []string{
			"BOT_TOKEN", "BOT_PASSWORD", "DB_PASSWORD",
			"QUIZ_DISTRACTORS", "MATCH_TIME_LIMIT_SECONDS",
			"FETCH_COOLDOWN_SECONDS", "RESULT_RETENTION_DAYS",
		} {
			os.Unsetenv(key)
		}
	}

	t.Run("missing required fields", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("defaults applied", func(t *testing.T) {
		clearEnv()
		os.Setenv("BOT_TOKEN", "token")
		os.Setenv("BOT_PASSWORD", "password")
		os.Setenv("DB_PASSWORD", "secret")
		defer clearEnv()

		cfg, err := Load()
		assert.NoError(t, err)
		assert.Equal(t, 2, cfg.QuizDistractors)
		assert.Equal(t, 60, cfg.MatchTimeLimit)
		assert.Equal(t, 60, cfg.FetchCooldownSeconds)
		assert.Equal(t, 365, cfg.ResultRetentionDays)
		assert.Equal(t, "assets/englishspanish.csv", cfg.CSVPath)
	})

	t.Run("out of range value rejected", func(t *testing.T) {
		clearEnv()
		os.Setenv("BOT_TOKEN", "token")
		os.Setenv("BOT_PASSWORD", "password")
		os.Setenv("DB_PASSWORD", "secret")
		os.Setenv("QUIZ_DISTRACTORS", "9")
		defer clearEnv()

		cfg, err := Load()
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})
}
