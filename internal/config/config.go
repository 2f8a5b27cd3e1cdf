package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StrategyBroadcast = "broadcast"
	StrategyFallback  = "fallback"
)

type Config struct {
	HTTPAddr string
	LogLevel string

	DB    DBConfig
	Redis RedisConfig
	Kafka KafkaConfig

	Notify NotifyConfig

	OwnerJWTSecret string
	RateLimitRPS   float64
	RateLimitBurst int
}

type DBConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Pass       string
	Name       string
	SQLitePath string
}

// DSN builds the data source name for the configured driver.
func (c DBConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.SQLitePath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	}
	// clientFoundRows makes UPDATE report matched rows, which SetRead relies on
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=UTC&clientFoundRows=true", c.User, c.Pass, c.Host, c.Port, c.Name)
}

type RedisConfig struct {
	Addr     string
	CacheTTL time.Duration
}

type KafkaConfig struct {
	Brokers    []string
	OrderTopic string
}

type NotifyConfig struct {
	Strategy     string
	Timeout      time.Duration
	Recipients   []string
	StoreName    string
	CurrencySign string
	EmailJS      EmailJSConfig
	Resend       ResendConfig
	SMTP         SMTPConfig
	WebhookURL   string
}

type EmailJSConfig struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	Endpoint   string
}

func (c EmailJSConfig) Enabled() bool {
	return c.ServiceID != "" && c.TemplateID != "" && c.PublicKey != ""
}

type ResendConfig struct {
	APIKey              string
	SecondaryAPIKey     string
	From                string
	SecondaryRecipients []string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8082"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DB: DBConfig{
			Driver:     getEnv("DB_DRIVER", "mysql"),
			Host:       getEnv("DB_HOST", "127.0.0.1"),
			Port:       getEnv("DB_PORT", "3306"),
			User:       getEnv("DB_USER", "root"),
			Pass:       getEnv("DB_PASS", ""),
			Name:       getEnv("DB_NAME", "order-db"),
			SQLitePath: getEnv("SQLITE_PATH", "./data/orders.db"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			CacheTTL: getEnvDuration("PRODUCT_CACHE_TTL", 10*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:    getEnvList("KAFKA_BROKERS"),
			OrderTopic: getEnv("KAFKA_ORDER_TOPIC", "order-topic"),
		},
		Notify: NotifyConfig{
			Strategy:     getEnv("NOTIFY_STRATEGY", StrategyBroadcast),
			Timeout:      getEnvDuration("NOTIFY_TIMEOUT", 10*time.Second),
			Recipients:   getEnvList("NOTIFY_RECIPIENTS"),
			StoreName:    getEnv("STORE_NAME", "Storefront"),
			CurrencySign: getEnv("CURRENCY_SIGN", "₹"),
			EmailJS: EmailJSConfig{
				ServiceID:  getEnv("EMAILJS_SERVICE_ID", ""),
				TemplateID: getEnv("EMAILJS_TEMPLATE_ID", ""),
				PublicKey:  getEnv("EMAILJS_PUBLIC_KEY", ""),
				PrivateKey: getEnv("EMAILJS_PRIVATE_KEY", ""),
				Endpoint:   getEnv("EMAILJS_ENDPOINT", "https://api.emailjs.com/api/v1.0/email/send"),
			},
			Resend: ResendConfig{
				APIKey:              getEnv("RESEND_API_KEY", ""),
				SecondaryAPIKey:     getEnv("RESEND_API_KEY_SECONDARY", ""),
				From:                getEnv("RESEND_FROM", "Storefront <onboarding@resend.dev>"),
				SecondaryRecipients: getEnvList("RESEND_SECONDARY_RECIPIENTS"),
			},
			SMTP: SMTPConfig{
				Host:     getEnv("SMTP_HOST", ""),
				Port:     getEnvInt("SMTP_PORT", 587),
				Username: getEnv("SMTP_USERNAME", ""),
				Password: getEnv("SMTP_PASSWORD", ""),
				From:     getEnv("SMTP_FROM", ""),
			},
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
		OwnerJWTSecret: getEnv("OWNER_JWT_SECRET", ""),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 3),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// getEnvList splits a comma separated value, dropping blanks.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
