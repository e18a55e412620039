package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// ErrInvalidConfig возвращается при недопустимых значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
// Значения читаются из TOML, затем переопределяются переменными окружения
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Scheduling    SchedulingConfig    `toml:"scheduling"`
	Notifications NotificationsConfig `toml:"notifications"`
	InviteRetry   InviteRetryConfig   `toml:"invite_retry"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"SERVER_HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	TxMaxAttempts   int    `toml:"tx_max_attempts" env:"DB_TX_MAX_ATTEMPTS"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file" env:"LOGS_FILE"`
	Level string `toml:"level" env:"LOGS_LEVEL"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path" env:"METRICS_PATH"`
	ServiceName string `toml:"service_name" env:"METRICS_SERVICE_NAME"`
}

// SchedulingConfig параметры движка расписания
type SchedulingConfig struct {
	Timezone        string `toml:"timezone" env:"SCHEDULING_TIMEZONE"`
	SlotStepMinutes int    `toml:"slot_step_minutes" env:"SCHEDULING_SLOT_STEP_MINUTES"`
	// Служебный клиент и субъект для внутренних (private) записей
	InternalCustomerName string `toml:"internal_customer_name" env:"SCHEDULING_INTERNAL_CUSTOMER_NAME"`
	InternalSubjectName  string `toml:"internal_subject_name" env:"SCHEDULING_INTERNAL_SUBJECT_NAME"`
}

// Location загружает часовой пояс салона
func (s SchedulingConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(s.Timezone)
}

// NotificationsConfig настройки отправки приглашений
type NotificationsConfig struct {
	Provider          string `toml:"provider" env:"NOTIFICATIONS_PROVIDER"` // twilio | log
	TwilioAccountSID  string `toml:"twilio_account_sid" env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string `toml:"twilio_auth_token" env:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber  string `toml:"twilio_from_number" env:"TWILIO_PHONE_NUMBER"`
	InviteTemplate    string `toml:"invite_template" env:"NOTIFICATIONS_INVITE_TEMPLATE"`
	SendTimeoutSecond int    `toml:"send_timeout" env:"NOTIFICATIONS_SEND_TIMEOUT"`
}

// InviteRetryConfig периодическая повторная отправка неудачных приглашений
type InviteRetryConfig struct {
	Enabled     bool   `toml:"enabled" env:"INVITE_RETRY_ENABLED"`
	Schedule    string `toml:"schedule" env:"INVITE_RETRY_SCHEDULE"`
	MaxAttempts int    `toml:"max_attempts" env:"INVITE_RETRY_MAX_ATTEMPTS"`
	BatchSize   int    `toml:"batch_size" env:"INVITE_RETRY_BATCH_SIZE"`
}

// Default значения по умолчанию, поверх которых накладывается файл
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			TxMaxAttempts:   3,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc-salon-scheduling",
		},
		Scheduling: SchedulingConfig{
			SlotStepMinutes:      15,
			InternalCustomerName: "Internal",
			InternalSubjectName:  "Internal",
		},
		Notifications: NotificationsConfig{
			Provider:          "log",
			InviteTemplate:    "Hello {name}! You are invited to \"{title}\" on {date} at {time}. Reply to confirm.",
			SendTimeoutSecond: 10,
		},
		InviteRetry: InviteRetryConfig{
			Schedule:    "*/15 * * * *",
			MaxAttempts: 3,
			BatchSize:   50,
		},
	}
}

// Load читает конфигурацию из TOML файла и применяет переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be a valid TCP port (got %d)", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Scheduling.SlotStepMinutes <= 0 {
		return fmt.Errorf("%w: scheduling.slot_step_minutes must be positive", ErrInvalidConfig)
	}
	if _, err := c.Scheduling.Location(); err != nil {
		return fmt.Errorf("%w: scheduling.timezone: %v", ErrInvalidConfig, err)
	}
	switch c.Notifications.Provider {
	case "log":
	case "twilio":
		if c.Notifications.TwilioAccountSID == "" || c.Notifications.TwilioAuthToken == "" || c.Notifications.TwilioFromNumber == "" {
			return fmt.Errorf("%w: twilio provider requires account sid, auth token and from number", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown notifications.provider %q", ErrInvalidConfig, c.Notifications.Provider)
	}
	if c.InviteRetry.Enabled && c.InviteRetry.MaxAttempts <= 0 {
		return fmt.Errorf("%w: invite_retry.max_attempts must be positive", ErrInvalidConfig)
	}
	return nil
}
