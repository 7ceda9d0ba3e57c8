package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_PORT", "LOG_LEVEL", "MARKET_NAME", "WHATSAPP_TOKEN", "WHATSAPP_PHONE_NUMBER_ID",
		"WHATSAPP_BASE_URL", "WHATSAPP_API_VERSION", "WHATSAPP_REPORT_TO",
		"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_DATABASE_ID", "STOCK_SHEET_RANGE",
		"REPORT_CRON_SCHEDULE", "TIMEZONE", "MONGODB_URI", "MONGODB_DB_NAME",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "South Pearl Street Farmers Market", cfg.Market.Name)
	assert.Equal(t, "0 20 * * *", cfg.Reporting.CronSchedule)
	assert.Equal(t, "Stock!A:D", cfg.Sheets.StockRange)
	assert.False(t, cfg.WhatsApp.Enabled())
	assert.False(t, cfg.Sheets.Enabled())
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "test.env")
	content := "APP_PORT=9090\nMARKET_NAME=Union Square\nMONGODB_DB_NAME=union\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "Union Square", cfg.Market.Name)
	assert.Equal(t, "union", cfg.MongoDB.DBName)
}

func TestValidateWhatsAppRequiresRecipient(t *testing.T) {
	clearEnv(t)
	t.Setenv("WHATSAPP_TOKEN", "token")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "123")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.EqualError(t, err, "WHATSAPP_REPORT_TO must be provided")
}

func TestValidateSheetsRequiresCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_SHEET_DATABASE_ID", "sheet")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.EqualError(t, err, "GOOGLE_SHEETS_CREDENTIALS_PATH must be provided")
}

func TestValidateNil(t *testing.T) {
	var cfg *Config
	assert.Error(t, cfg.Validate())
}
