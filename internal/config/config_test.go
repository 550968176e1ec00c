package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validTOML = `
[server]
http_port = 9090

[database]
host = "localhost"
port = 5432
user = "bot"
password = "secret"
dbname = "appointments"

[scheduler]
tick_interval_seconds = 15
lookahead_minutes = 10

[chat_gateway]
url = "http://chat-gateway:8081"
timeout = 5

[mail_gateway]
url = "http://mail-gateway:8082"
timeout = 5

[logs]
file = "logs/app.log"
level = "debug"
`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func setRequiredSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("WEBHOOK_SECRET", "hook-secret")
	t.Setenv("CHAT_GATEWAY_TOKEN", "chat-token")
	t.Setenv("MAIL_GATEWAY_TOKEN", "mail-token")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
}

func TestLoad(t *testing.T) {
	setRequiredSecrets(t)

	cfg, err := Load(writeConfigFile(t, validTOML))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 15, cfg.Scheduler.TickIntervalSeconds)
	assert.Equal(t, 10, cfg.Scheduler.LookaheadMinutes)
	assert.Equal(t, "http://chat-gateway:8081", cfg.ChatGateway.URL)
	assert.Equal(t, "debug", cfg.Logs.Level)

	assert.Equal(t, "hook-secret", cfg.Secrets.WebhookSecret)
	assert.Equal(t, "chat-token", cfg.Secrets.ChatGatewayToken)
	assert.Equal(t, "mail-token", cfg.Secrets.MailGatewayToken)
	assert.Equal(t, "admin@example.com", cfg.Secrets.AdminEmail)
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequiredSecrets(t)

	minimal := `
[database]
host = "localhost"
user = "bot"
dbname = "appointments"

[chat_gateway]
url = "http://chat-gateway:8081"

[mail_gateway]
url = "http://mail-gateway:8082"
`
	cfg, err := Load(writeConfigFile(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 60, cfg.Scheduler.TickIntervalSeconds)
	assert.Equal(t, 30, cfg.Scheduler.LookaheadMinutes)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "appointment-bot", cfg.Metrics.ServiceName)
	assert.Equal(t, "info", cfg.Logs.Level)
}

func TestLoadMissingSecretFails(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("MAIL_GATEWAY_TOKEN", "")

	_, err := Load(writeConfigFile(t, validTOML))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAIL_GATEWAY_TOKEN")
}

func TestLoadMissingDatabaseHostFails(t *testing.T) {
	setRequiredSecrets(t)

	noHost := `
[database]
user = "bot"
dbname = "appointments"

[chat_gateway]
url = "http://chat-gateway:8081"

[mail_gateway]
url = "http://mail-gateway:8082"
`
	_, err := Load(writeConfigFile(t, noHost))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.host")
}

func TestLoadMissingFileFails(t *testing.T) {
	setRequiredSecrets(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "bot",
		Password: "secret",
		DBName:   "appointments",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=bot password=secret dbname=appointments sslmode=disable",
		db.DSN())
}
