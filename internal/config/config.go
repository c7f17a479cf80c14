package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Arunkino/MindHaven-Backend/pkg/types"
)

// ErrInvalidConfig возвращается, когда конфигурация не прошла валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Scheduling SchedulingConfig `toml:"scheduling"`
	Billing    BillingConfig    `toml:"billing"`
	Payment    PaymentConfig    `toml:"payment"`
	RTC        RTCConfig        `toml:"rtc"`
	Redis      RedisConfig      `toml:"redis"`
	Reminders  RemindersConfig  `toml:"reminders"`
	App        AppConfig        `toml:"app"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
	CORS       CORSConfig       `toml:"cors"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SchedulingConfig часовой пояс, в котором менторы задают расписание
type SchedulingConfig struct {
	Timezone string `toml:"timezone"`
}

// Location возвращает *time.Location для Timezone
func (s SchedulingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

type BillingConfig struct {
	Currency      string `toml:"currency"`
	MinimumCharge string `toml:"minimum_charge"`
}

// MinimumChargeMoney возвращает минимальную сумму оплаты
func (b BillingConfig) MinimumChargeMoney() (types.Money, error) {
	return types.ParseMoney(b.MinimumCharge)
}

type PaymentConfig struct {
	Provider string         `toml:"provider"` // razorpay | stripe
	Razorpay RazorpayConfig `toml:"razorpay"`
	Stripe   StripeConfig   `toml:"stripe"`
}

type RazorpayConfig struct {
	BaseURL   string `toml:"base_url"`
	KeyID     string `toml:"key_id"`
	KeySecret string `toml:"key_secret"`
	Timeout   int    `toml:"timeout"`
}

type StripeConfig struct {
	SecretKey     string `toml:"secret_key"`
	WebhookSecret string `toml:"webhook_secret"`
}

type RTCConfig struct {
	AppID    string `toml:"app_id"`
	Secret   string `toml:"secret"`
	TokenTTL int    `toml:"token_ttl"` // секунды
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type RemindersConfig struct {
	Enabled     bool   `toml:"enabled"`
	Cron        string `toml:"cron"`
	LeadMinutes int    `toml:"lead_minutes"`
	Concurrency int    `toml:"concurrency"`
}

type AppConfig struct {
	PublicURL string `toml:"public_url"`
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию,
// переменные окружения и валидирует результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
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
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "mindhaven",
		},
		Scheduling: SchedulingConfig{Timezone: "Asia/Kolkata"},
		Billing: BillingConfig{
			Currency:      "INR",
			MinimumCharge: "50.00",
		},
		Payment: PaymentConfig{
			Provider: "razorpay",
			Razorpay: RazorpayConfig{
				BaseURL: "https://api.razorpay.com/v1",
				Timeout: 10,
			},
		},
		RTC:   RTCConfig{TokenTTL: 3600},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Reminders: RemindersConfig{
			Cron:        "@every 1m",
			LeadMinutes: 5,
			Concurrency: 2,
		},
		RateLimit: RateLimitConfig{RPS: 5, Burst: 10},
	}
}

// applyEnv переопределяет секреты из переменных окружения
func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"DATABASE_PASSWORD":   &c.Database.Password,
		"RAZORPAY_KEY_ID":     &c.Payment.Razorpay.KeyID,
		"RAZORPAY_KEY_SECRET": &c.Payment.Razorpay.KeySecret,
		"STRIPE_SECRET_KEY":   &c.Payment.Stripe.SecretKey,
		"RTC_SECRET":          &c.RTC.Secret,
		"REDIS_PASSWORD":      &c.Redis.Password,
	}
	for env, target := range overrides {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*target = v
		}
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if _, err := c.Scheduling.Location(); err != nil {
		return fmt.Errorf("%w: scheduling.timezone: %v", ErrInvalidConfig, err)
	}
	minCharge, err := c.Billing.MinimumChargeMoney()
	if err != nil || minCharge < 0 {
		return fmt.Errorf("%w: billing.minimum_charge %q", ErrInvalidConfig, c.Billing.MinimumCharge)
	}
	switch c.Payment.Provider {
	case "razorpay", "stripe":
	default:
		return fmt.Errorf("%w: payment.provider %q", ErrInvalidConfig, c.Payment.Provider)
	}
	if c.Reminders.Enabled && c.Reminders.LeadMinutes <= 0 {
		return fmt.Errorf("%w: reminders.lead_minutes must be positive", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit.rps and rate_limit.burst must be positive", ErrInvalidConfig)
	}
	return nil
}
