package main

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// config is read from the environment at startup.
type config struct {
	Addr          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	FreeLimit       int
	ProviderTimeout time.Duration
}

func loadConfig() (config, error) {
	cfg := config{
		Addr:          envOr("ADDR", ":8080"),
		RedisAddr:     envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   envOr("OPENAI_MODEL", "gpt-4o-mini"),
	}

	var err error
	if cfg.RedisDB, err = envInt("REDIS_DB", 0); err != nil {
		return config{}, err
	}
	if cfg.FreeLimit, err = envInt("FREE_LIMIT", 20); err != nil {
		return config{}, err
	}

	timeoutSecs, err := envInt("PROVIDER_TIMEOUT_SECONDS", 30)
	if err != nil {
		return config{}, err
	}
	cfg.ProviderTimeout = time.Duration(timeoutSecs) * time.Second

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}
