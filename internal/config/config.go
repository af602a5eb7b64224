package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Persistencia
	Database    string // sqlite | postgres | mongodb
	SQLitePath  string
	PostgresDSN string
	MongoURI    string
	MongoDB     string

	// Infraestructura de eventos
	KafkaBrokers   []string
	KafkaTopic     string
	ClickHouseAddr string
	ClickHouseDB   string
	SendBatchSize  int // máximo de eventos por pasada de publicación

	// Cache
	RedisAddr string
	CacheTTL  time.Duration

	// API
	HTTPPort  string
	JWTSecret string
}

func LoadConfig() *Config {
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	getEnvInt := func(key string, fallback int) int {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				return n
			}
		}
		return fallback
	}

	kafkaBrokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")

	return &Config{
		Database:       getEnv("DATABASE", "sqlite"),
		SQLitePath:     getEnv("SQLITE_PATH", "./hexanews.db"),
		PostgresDSN:    getEnv("POSTGRES_DSN", "postgres://localhost:5432/hexanews?sslmode=disable"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "hexanews"),
		KafkaBrokers:   kafkaBrokers,
		KafkaTopic:     getEnv("KAFKA_TOPIC", "domain-events"),
		ClickHouseAddr: getEnv("CLICKHOUSE_ADDR", ""),
		ClickHouseDB:   getEnv("CLICKHOUSE_DB", "hexanews"),
		SendBatchSize:  getEnvInt("SEND_BATCH_SIZE", 50),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTTL:       5 * time.Minute,
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
	}
}
