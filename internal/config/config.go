package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Scheduler   SchedulerConfig   `toml:"scheduler"`
	ChatGateway GatewayConfig     `toml:"chat_gateway"`
	MailGateway GatewayConfig     `toml:"mail_gateway"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Secrets     SecretsConfig     `toml:"-"` // только из окружения, не из toml
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// SchedulerConfig настройки планировщика напоминаний
type SchedulerConfig struct {
	TickIntervalSeconds int `toml:"tick_interval_seconds"`
	LookaheadMinutes    int `toml:"lookahead_minutes"`
}

// GatewayConfig настройки интеграционного клиента
type GatewayConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SecretsConfig обязательные секреты из переменных окружения
// Отсутствие любого из них — фатальная ошибка старта
type SecretsConfig struct {
	WebhookSecret    string // WEBHOOK_SECRET — проверка входящих апдейтов
	ChatGatewayToken string // CHAT_GATEWAY_TOKEN — доступ к chat transport
	MailGatewayToken string // MAIL_GATEWAY_TOKEN — доступ к notifier
	AdminEmail       string // ADMIN_EMAIL — адрес администратора
}

// Load читает конфигурацию из toml файла и переменных окружения
func Load(path string) (*Config, error) {
	// .env опционален: в проде переменные приходят из окружения
	_ = godotenv.Load()

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	cfg.applyDefaults()

	secrets, err := loadSecrets()
	if err != nil {
		return nil, err
	}
	cfg.Secrets = secrets

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Scheduler.TickIntervalSeconds == 0 {
		c.Scheduler.TickIntervalSeconds = 60
	}
	if c.Scheduler.LookaheadMinutes == 0 {
		c.Scheduler.LookaheadMinutes = 30
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "appointment-bot"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
}

func loadSecrets() (SecretsConfig, error) {
	secrets := SecretsConfig{
		WebhookSecret:    os.Getenv("WEBHOOK_SECRET"),
		ChatGatewayToken: os.Getenv("CHAT_GATEWAY_TOKEN"),
		MailGatewayToken: os.Getenv("MAIL_GATEWAY_TOKEN"),
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
	}

	required := []struct {
		name  string
		value string
	}{
		{"WEBHOOK_SECRET", secrets.WebhookSecret},
		{"CHAT_GATEWAY_TOKEN", secrets.ChatGatewayToken},
		{"MAIL_GATEWAY_TOKEN", secrets.MailGatewayToken},
		{"ADMIN_EMAIL", secrets.AdminEmail},
	}

	for _, r := range required {
		if r.value == "" {
			return SecretsConfig{}, fmt.Errorf("config: required environment variable %s is not set", r.name)
		}
	}

	return secrets, nil
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("config: database.user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if c.ChatGateway.URL == "" {
		return fmt.Errorf("config: chat_gateway.url is required")
	}
	if c.MailGateway.URL == "" {
		return fmt.Errorf("config: mail_gateway.url is required")
	}
	return nil
}
