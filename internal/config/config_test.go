package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "DB_DRIVER", "NOTIFY_STRATEGY", "NOTIFY_TIMEOUT", "NOTIFY_RECIPIENTS", "CURRENCY_SIGN", "SMTP_PORT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, ":8082", cfg.HTTPAddr)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, StrategyBroadcast, cfg.Notify.Strategy)
	assert.Equal(t, 10*time.Second, cfg.Notify.Timeout)
	assert.Empty(t, cfg.Notify.Recipients)
	assert.Equal(t, "₹", cfg.Notify.CurrencySign)
	assert.Equal(t, 587, cfg.Notify.SMTP.Port)
	assert.Equal(t, 1.0, cfg.RateLimitRPS)
	assert.Equal(t, 3, cfg.RateLimitBurst)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/orders.db")
	t.Setenv("NOTIFY_STRATEGY", StrategyFallback)
	t.Setenv("NOTIFY_TIMEOUT", "3s")
	t.Setenv("NOTIFY_RECIPIENTS", "owner@example.com, ,ops@example.com ")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("SMTP_PORT", "not-a-port")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, StrategyFallback, cfg.Notify.Strategy)
	assert.Equal(t, 3*time.Second, cfg.Notify.Timeout)
	assert.Equal(t, []string{"owner@example.com", "ops@example.com"}, cfg.Notify.Recipients)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 587, cfg.Notify.SMTP.Port)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
}

func TestDBConfig_DSN(t *testing.T) {
	mysql := DBConfig{Driver: "mysql", Host: "db", Port: "3306", User: "app", Pass: "secret", Name: "orders"}
	assert.Equal(t, "app:secret@tcp(db:3306)/orders?parseTime=true&loc=UTC&clientFoundRows=true", mysql.DSN())

	sqlite := DBConfig{Driver: "sqlite", SQLitePath: "./data/orders.db"}
	assert.Equal(t, "./data/orders.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", sqlite.DSN())
}

func TestChannelEnabled(t *testing.T) {
	assert.False(t, EmailJSConfig{ServiceID: "s", TemplateID: "t"}.Enabled())
	assert.True(t, EmailJSConfig{ServiceID: "s", TemplateID: "t", PublicKey: "k"}.Enabled())
	assert.False(t, SMTPConfig{Host: "smtp.example.com"}.Enabled())
	assert.True(t, SMTPConfig{Host: "smtp.example.com", From: "orders@example.com"}.Enabled())
}

func TestNewKafkaWriter(t *testing.T) {
	assert.Nil(t, NewKafkaWriter(KafkaConfig{OrderTopic: "order-topic"}))

	w := NewKafkaWriter(KafkaConfig{Brokers: []string{"localhost:9092"}, OrderTopic: "order-topic"})
	if assert.NotNil(t, w) {
		assert.Equal(t, "order-topic", w.Topic)
		assert.NoError(t, w.Close())
	}
}
