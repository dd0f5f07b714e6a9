package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AI providers supported by the chat assistant.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Config represents the full application configuration surface.
type Config struct {
	Server     ServerConfig
	Auth       AuthConfig
	DataSource DataSourceConfig
	Sheets     SheetsConfig
	Schedule   ScheduleConfig
	AI         AIConfig
	MongoDB    MongoDBConfig
	Quality    QualityConfig
	WhatsApp   WhatsAppConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port     string
	LogLevel string
}

// AuthConfig holds the dashboard access gate.
type AuthConfig struct {
	AccessCode string
	SessionTTL time.Duration
}

// DataSourceConfig holds the default Apps Script web app URL. A URL saved
// through the API takes precedence.
type DataSourceConfig struct {
	URL string
}

// SheetsConfig contains configuration required to read from Google Sheets directly.
// It is optional; leaving CredentialsPath empty disables the Sheets source.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
	SnapshotRange   string
}

// Enabled reports whether direct Sheets access is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// ScheduleConfig holds cron expressions for background jobs.
type ScheduleConfig struct {
	RefreshCron  string
	SnapshotCron string
	DigestCron   string
	Timezone     string
}

// AIConfig holds settings for LLM providers.
type AIConfig struct {
	Provider       string
	GeminiKey      string
	GeminiModel    string
	AnthropicKey   string
	AnthropicModel string
}

// Enabled reports whether the selected provider has credentials.
func (c AIConfig) Enabled() bool {
	switch c.Provider {
	case ProviderAnthropic:
		return c.AnthropicKey != ""
	default:
		return c.GeminiKey != ""
	}
}

// MongoDBConfig holds settings for MongoDB. An empty URI keeps state in memory.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// QualityConfig points to an optional YAML file overriding quality standards.
type QualityConfig struct {
	StandardsFile string
}

// WhatsAppConfig contains credentials for the optional weekly digest.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	BaseURL       string
	APIVersion    string
	DigestTo      string
}

// Enabled reports whether the weekly digest can be sent.
func (c WhatsAppConfig) Enabled() bool {
	return c.AccessToken != "" && c.PhoneNumberID != "" && c.DigestTo != ""
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	sessionTTL, err := time.ParseDuration(getenvWithDefault("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvWithDefault("APP_PORT", "8080"),
			LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			AccessCode: os.Getenv("ACCESS_CODE"),
			SessionTTL: sessionTTL,
		},
		DataSource: DataSourceConfig{
			URL: os.Getenv("DATA_SOURCE_URL"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			Range:           getenvWithDefault("GOOGLE_SHEET_RANGE", "Datos!A:L"),
			SnapshotRange:   os.Getenv("GOOGLE_SHEET_SNAPSHOT_RANGE"),
		},
		Schedule: ScheduleConfig{
			RefreshCron:  getenvWithDefault("REFRESH_CRON_SCHEDULE", "*/30 * * * *"),
			SnapshotCron: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 20 * * *"),
			DigestCron:   getenvWithDefault("DIGEST_CRON_SCHEDULE", "0 20 * * 5"),
			Timezone:     getenvWithDefault("TIMEZONE", "America/Mexico_City"),
		},
		AI: AIConfig{
			Provider:       strings.ToLower(getenvWithDefault("AI_PROVIDER", ProviderGemini)),
			GeminiKey:      os.Getenv("GEMINI_API_KEY"),
			GeminiModel:    getenvWithDefault("GEMINI_MODEL", "gemini-2.5-flash"),
			AnthropicKey:   os.Getenv("ANTHROPIC_API_KEY"),
			AnthropicModel: getenvWithDefault("ANTHROPIC_MODEL", "claude-sonnet-4-5"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "eggmonitor"),
		},
		Quality: QualityConfig{
			StandardsFile: os.Getenv("QUALITY_STANDARDS_FILE"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			DigestTo:      os.Getenv("WHATSAPP_DIGEST_TO"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Auth.AccessCode == "" {
		return errors.New("ACCESS_CODE must be provided")
	}

	switch c.AI.Provider {
	case ProviderGemini, ProviderAnthropic:
	default:
		return fmt.Errorf("AI_PROVIDER %q is not supported", c.AI.Provider)
	}

	if c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID == "" {
		return errors.New("GOOGLE_SHEET_DATABASE_ID must be provided with GOOGLE_SHEETS_CREDENTIALS_PATH")
	}

	if c.Sheets.Enabled() && c.Sheets.Range == "" {
		return errors.New("GOOGLE_SHEET_RANGE must not be empty")
	}

	if c.Schedule.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	if c.MongoDB.URI != "" && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must not be empty")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
