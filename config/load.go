package config

import (
	"log/slog"
	"os"
	"strconv"
)

func Load() App {
	cfg := App{
		Port:        getenv("APP_PORT", "4000"),
		DatabaseURL: must("DATABASE_URL"),
		Env:         getenv("APP_ENV", "dev"),
		RateLimit:   getenvInt("RATE_LIMIT", 120),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid int env, using default", "key", k, "value", v)
		return def
	}
	return n
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
