package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServiceName string

	ServerPort int

	// DatabasePath is the sqlite file holding all persisted storefront
	// state. ":memory:" is accepted for throwaway runs.
	DatabasePath string

	LogLevel string

	KafkaBrokers []string

	CheckoutDelay time.Duration
}

func Load() Config {
	return Config{
		ServiceName:   EnvDefault("SERVICE_NAME", "soundshop"),
		ServerPort:    EnvIntDefault("SERVER_PORT", 8080),
		DatabasePath:  EnvDefault("DATABASE_PATH", "soundshop.db"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		KafkaBrokers:  CSV(os.Getenv("KAFKA_BROKERS")),
		CheckoutDelay: time.Duration(EnvIntDefault("CHECKOUT_DELAY_MS", 2000)) * time.Millisecond,
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}
	return def
}

func EnvIntDefault(key string, def int) int {
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
