package config

import (
	"flag"
	"os"
	"strconv"
)

type Config struct {
	// Port the HTTP server listens on.
	Port *int

	// Redis address for the event publisher. Empty disables
	// publishing entirely.
	RedisAddr *string

	// Redis db for the event publisher.
	RedisDb *int

	ClientSendBufferSize *int
	PingIntervalSeconds  *int
}

var CFG = &Config{
	Port:                 flag.Int("port", getEnvAsInt("PORT", 8000), "Port the HTTP server listens on."),
	RedisAddr:            flag.String("redis-addr", getEnv("REDIS_ADDR", ""), "Redis address for publishing queue events. Leave empty to disable publishing."),
	RedisDb:              flag.Int("redis-db", getEnvAsInt("REDIS_DB", 0), "Redis db for publishing queue events."),
	ClientSendBufferSize: flag.Int("client-send-buffer-size", 64, "Buffered outbound ws messages per watcher before it is considered stuck and dropped."),
	PingIntervalSeconds:  flag.Int("ping-interval-seconds", 30, "Send pings to websocket peer with this interval."),
}

func ProvideConfig() *Config {
	return CFG
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}
