// Package config loads runtime configuration from the environment, with a
// .env file for local development.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds all runtime settings.
type Config struct {
	Port        string
	MongoURI    string
	MongoDBName string

	OutboxPath   string
	SyncEnabled  bool
	SyncInterval time.Duration

	JWTSecret string
	JWTExpiry time.Duration

	MQTTBroker string
	MQTTTopic  string
}

// Load reads configuration from the environment. A missing .env file is not
// an error; deployed environments set real variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: getEnv("MONGO_DBNAME", "carwash"),

		OutboxPath:   getEnv("OUTBOX_DB_PATH", "carwash_outbox.db"),
		SyncEnabled:  getEnv("SYNC_ENABLED", "1") == "1",
		SyncInterval: getDuration("SYNC_INTERVAL", 10*time.Second),

		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiry: getDuration("JWT_EXPIRY", 24*time.Hour),

		MQTTBroker: getEnv("MQTT_BROKER", ""),
		MQTTTopic:  getEnv("MQTT_TOPIC", "carwash/orders"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.WithField("key", key).WithError(err).Warn("invalid duration, using default")
		return fallback
	}
	return d
}
