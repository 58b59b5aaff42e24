package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/spec-kit/ticket-tokengen/pkg/util"
)

// Config aggregates runtime configuration for the token generator.
type Config struct {
	Auth   AuthConfig
	Output OutputConfig
	Logger LoggerConfig
}

// AuthConfig carries the signing parameters. Secret, issuer and
// audience must match the values configured on the ticketing server
// under test; a mismatch yields tokens the server rejects.
type AuthConfig struct {
	JWTSecret  string
	Issuer     string
	Audience   string
	TTLHours   int
	BcryptCost int
}

// OutputConfig controls where fixture artifacts are written.
type OutputConfig struct {
	TokensPath   string
	EmitUserSeed bool
	UsersPath    string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying
// defaults that match the server's development configuration.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Auth: AuthConfig{
			JWTSecret:  getEnv("TOKENS_JWT_SECRET", "your-super-secret-jwt-key-change-this-in-production"),
			Issuer:     getEnv("TOKENS_ISSUER", "ga-ticketing-system"),
			Audience:   getEnv("TOKENS_AUDIENCE", "ga-ticketing-client"),
			TTLHours:   getEnvAsInt("TOKENS_TTL_HOURS", 24),
			BcryptCost: getEnvAsInt("TOKENS_BCRYPT_COST", 12),
		},
		Output: OutputConfig{
			TokensPath:   getEnv("TOKENS_OUTPUT_PATH", "test_tokens.json"),
			EmitUserSeed: getEnvAsBool("TOKENS_EMIT_USER_SEED", false),
			UsersPath:    getEnv("TOKENS_USER_SEED_PATH", "test_users.json"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, util.NewEnvironmentError(
			"signing secret is empty",
			"set TOKENS_JWT_SECRET to the secret configured on the ticketing server",
		)
	}
	if cfg.Auth.TTLHours <= 0 {
		return nil, util.NewEnvironmentError(
			"token TTL must be positive",
			"set TOKENS_TTL_HOURS to a positive number of hours (default 24)",
		)
	}

	return cfg, nil
}

// TTL returns the configured token lifetime.
func (a AuthConfig) TTL() time.Duration {
	return time.Duration(a.TTLHours) * time.Hour
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
