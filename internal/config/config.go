package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds all application configuration, sourced from the
// environment.
type Config struct {
	Port     int
	LogLevel string

	Provider        string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	MailFromName string
	Recipient    string

	Language           string
	NewsPerCategory    int
	IntervalMinutes    int
	GenerateTimeoutSec int
	DataDir            string
	FrontendURL        string
}

// Load reads the environment into a validated Config. Defaults cover
// everything except the provider API key and the mail account.
func Load() (Config, error) {
	cfg := Config{
		Port:               getEnvInt("PORT", 3000),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Provider:           getEnv("NEWS_PROVIDER", ProviderOpenAI),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey:    os.Getenv("ANTHROPIC_API_KEY"),
		SMTPHost:           getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:           getEnvInt("SMTP_PORT", 587),
		SMTPUser:           os.Getenv("SMTP_USER"),
		SMTPPassword:       os.Getenv("SMTP_PASSWORD"),
		MailFromName:       getEnv("MAIL_FROM_NAME", "NewsJolt"),
		Recipient:          os.Getenv("MAIL_RECIPIENT"),
		Language:           getEnv("NEWS_LANGUAGE", "English"),
		NewsPerCategory:    getEnvInt("NEWS_PER_CATEGORY", 3),
		IntervalMinutes:    getEnvInt("DIGEST_INTERVAL_MINUTES", 10),
		GenerateTimeoutSec: getEnvInt("GENERATE_TIMEOUT_SECONDS", 120),
		DataDir:            getEnv("DATA_DIR", "./data"),
		FrontendURL:        os.Getenv("FRONTEND_URL"),
	}
	cfg.MailFrom = getEnv("MAIL_FROM", cfg.SMTPUser)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that every value the process cannot run without is
// present.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required")
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required")
		}
	default:
		return fmt.Errorf("unknown NEWS_PROVIDER %q: must be %q or %q", c.Provider, ProviderOpenAI, ProviderAnthropic)
	}

	if c.SMTPUser == "" {
		return fmt.Errorf("SMTP_USER is required")
	}
	if c.SMTPPassword == "" {
		return fmt.Errorf("SMTP_PASSWORD is required")
	}
	if c.Recipient == "" {
		return fmt.Errorf("MAIL_RECIPIENT is required")
	}

	if c.IntervalMinutes < 1 || c.IntervalMinutes > 59 {
		return fmt.Errorf("DIGEST_INTERVAL_MINUTES must be 1-59, got %d", c.IntervalMinutes)
	}
	if c.NewsPerCategory < 1 {
		return fmt.Errorf("NEWS_PER_CATEGORY must be positive, got %d", c.NewsPerCategory)
	}

	return nil
}

// HeadlinePath is the headline history file inside the data directory.
func (c *Config) HeadlinePath() string {
	return filepath.Join(c.DataDir, "headline_history.json")
}

// DigestPath is the digest history file inside the data directory.
func (c *Config) DigestPath() string {
	return filepath.Join(c.DataDir, "digest_history.json")
}

func getEnv(name, defaultValue string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(name string, defaultValue int) int {
	v := os.Getenv(name)
	if v == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid numeric environment variable, using default", "name", name, "value", v, "default", defaultValue)
		return defaultValue
	}

	return parsed
}
