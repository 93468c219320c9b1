package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	ServerHost       string
	ChartServicePort string
	AuditServicePort string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration

	// Database
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Kafka
	KafkaBrokers    []string
	KafkaGroupID    string
	ChartEventTopic string

	// Chart data
	SeedPath       string
	CPTCatalogPath string

	// Snapshot persistence: redis | postgres | file
	SnapshotBackend  string
	SnapshotFilePath string
	SnapshotRedisKey string
}

func Load() *Config {
	return &Config{
		ServerHost:       getEnv("SERVER_HOST", "0.0.0.0"),
		ChartServicePort: getEnv("CHART_SERVICE_PORT", "8080"),
		AuditServicePort: getEnv("AUDIT_SERVICE_PORT", "8081"),
		ReadTimeout:      getDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:     getDuration("WRITE_TIMEOUT", 30*time.Second),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "ptaemr"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "ptaemr123"),
		PostgresDB:       getEnv("POSTGRES_DB", "ptaemr"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		KafkaBrokers:    getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaGroupID:    getEnv("KAFKA_GROUP_ID", "ptaemr-platform"),
		ChartEventTopic: getEnv("CHART_EVENT_TOPIC", "chart-events"),

		SeedPath:       getEnv("SEED_PATH", ""),
		CPTCatalogPath: getEnv("CPT_CATALOG_PATH", ""),

		SnapshotBackend:  getEnv("SNAPSHOT_BACKEND", "file"),
		SnapshotFilePath: getEnv("SNAPSHOT_FILE_PATH", "chart-snapshot.json"),
		SnapshotRedisKey: getEnv("SNAPSHOT_REDIS_KEY", "ptaemr:chart:records"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
