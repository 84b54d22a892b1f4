package config

import (
	"os"
	"strings"
)

// Server captures the harness daemon configuration.
type Server struct {
	Addr         string
	KafkaBrokers []string
	RedisURL     string
	PostgresDSN  string
}

// FromEnv builds a Server config from environment variables so main stays
// lean. Redis and Postgres are optional; when unset the daemon falls back to
// in-memory stores.
func FromEnv() Server {
	addr := os.Getenv("TIERCHECK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	brokers := os.Getenv("TIERCHECK_KAFKA_BROKERS")
	if brokers == "" {
		brokers = "localhost:9092"
	}

	return Server{
		Addr:         addr,
		KafkaBrokers: strings.Split(brokers, ","),
		RedisURL:     os.Getenv("TIERCHECK_REDIS_URL"),
		PostgresDSN:  os.Getenv("TIERCHECK_POSTGRES_DSN"),
	}
}
