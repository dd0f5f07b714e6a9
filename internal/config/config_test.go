package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

// unsetenv removes key for the duration of the test so godotenv may set it.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoad_DefaultsFromEnv(t *testing.T) {
	t.Setenv("ACCESS_CODE", "secreto")
	t.Setenv("APP_PORT", "")
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("SESSION_TTL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, "Datos!A:L", cfg.Sheets.Range)
	assert.False(t, cfg.Sheets.Enabled())
	assert.Equal(t, "eggmonitor", cfg.MongoDB.DBName)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
}

func TestLoad_InvalidSessionTTL(t *testing.T) {
	t.Setenv("ACCESS_CODE", "secreto")
	t.Setenv("SESSION_TTL", "un dia")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "SESSION_TTL")
}

func TestLoad_EnvFile(t *testing.T) {
	unsetenv(t, "ACCESS_CODE")
	unsetenv(t, "AI_PROVIDER")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ACCESS_CODE=desde-archivo\nAI_PROVIDER=Anthropic\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "desde-archivo", cfg.Auth.AccessCode)
	assert.Equal(t, ProviderAnthropic, cfg.AI.Provider)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080"},
			Auth:     AuthConfig{AccessCode: "x"},
			AI:       AIConfig{Provider: ProviderGemini},
			Schedule: ScheduleConfig{Timezone: "UTC"},
		}
	}

	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Auth.AccessCode = ""
	assert.EqualError(t, cfg.Validate(), "ACCESS_CODE must be provided")

	cfg = valid()
	cfg.AI.Provider = "openai"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Sheets.CredentialsPath = "/tmp/creds.json"
	assert.Error(t, cfg.Validate())

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}

func TestAIConfig_Enabled(t *testing.T) {
	assert.False(t, AIConfig{Provider: ProviderGemini}.Enabled())
	assert.True(t, AIConfig{Provider: ProviderGemini, GeminiKey: "k"}.Enabled())
	assert.False(t, AIConfig{Provider: ProviderAnthropic, GeminiKey: "k"}.Enabled())
	assert.True(t, AIConfig{Provider: ProviderAnthropic, AnthropicKey: "k"}.Enabled())
}

func TestLoadQualityStandards(t *testing.T) {
	defaults, err := LoadQualityStandards("")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultQualityStandards(), defaults)

	path := filepath.Join(t.TempDir(), "standards.yaml")
	yamlDoc := "weight:\n  min: 40\n  max: 75\n  poor: [40, 50]\n  acceptable: [50, 62]\n  optimal: [62, 75]\n"
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o600))

	got, err := LoadQualityStandards(path)
	require.NoError(t, err)
	assert.Equal(t, 40.0, got[models.MetricWeight].Min)
	assert.Equal(t, [2]float64{50, 62}, got[models.MetricWeight].Acceptable)
	assert.Equal(t, defaults[models.MetricHaughUnits], got[models.MetricHaughUnits])

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("color:\n  min: 1\n  max: 2\n"), 0o600))
	_, err = LoadQualityStandards(bad)
	assert.Error(t, err)
}
