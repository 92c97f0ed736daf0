package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" env-default:"8080"`

	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER" env-default:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" env-default:"fulfillment"`
	DBSslMode  string `env:"DB_SSLMODE" env-default:"disable"`

	QueueLockTimeout   time.Duration `env:"QUEUE_LOCK_TIMEOUT" env-default:"2s"`
	QueueMaxAttempts   int           `env:"QUEUE_MAX_ATTEMPTS" env-default:"3"`
	QueueAuditSchedule string        `env:"QUEUE_AUDIT_SCHEDULE" env-default:"0 * * * * *"`

	// Empty KafkaHost or RabbitMQURL disables that sink.
	KafkaHost              string `env:"KAFKA_HOST"`
	KafkaOrderChangedTopic string `env:"KAFKA_ORDER_CHANGED_TOPIC" env-default:"order.changed"`
	RabbitMQURL            string `env:"RABBITMQ_URL"`
	RabbitMQExchange       string `env:"RABBITMQ_EXCHANGE" env-default:"order_status"`

	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

// LoadConfig loads envFile into the process environment when it exists and
// then reads Config from the environment. Variables already set win over
// the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var config Config
	if err := cleanenv.ReadEnv(&config); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}
	if config.QueueMaxAttempts < 1 {
		return Config{}, fmt.Errorf("QUEUE_MAX_ATTEMPTS must be at least 1, got %d", config.QueueMaxAttempts)
	}
	if config.QueueLockTimeout <= 0 {
		return Config{}, fmt.Errorf("QUEUE_LOCK_TIMEOUT must be positive, got %s", config.QueueLockTimeout)
	}

	return config, nil
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// KafkaBrokers splits KafkaHost on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, broker := range strings.Split(c.KafkaHost, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
