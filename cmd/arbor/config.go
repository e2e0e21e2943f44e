package main

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/adapters/file"
	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/adapters/redis"
	"github.com/aretw0/arbor/pkg/adapters/sqlite"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/caarlos0/env/v11"
)

// Config holds the server and store settings, loaded from the environment.
// Flags override individual values where a flag exists.
type Config struct {
	Addr          string `env:"ARBOR_ADDR" envDefault:":8080"`
	Store         string `env:"ARBOR_STORE" envDefault:"memory"` // memory|file|redis|sqlite
	FilePath      string `env:"ARBOR_FILE_PATH" envDefault:".arbor/actions.jsonl"`
	SQLitePath    string `env:"ARBOR_SQLITE_PATH" envDefault:".arbor/actions.db"`
	RedisAddr     string `env:"ARBOR_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"ARBOR_REDIS_PASSWORD"`
	RedisDB       int    `env:"ARBOR_REDIS_DB" envDefault:"0"`
	LogLevel      string `env:"ARBOR_LOG_LEVEL" envDefault:"info"`
}

// loadConfig parses the environment into a Config.
func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// openStore builds the configured ActionStore. The returned closer releases
// backend resources; it is a no-op for stores without any.
func openStore(cfg Config) (ports.ActionStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store {
	case "memory":
		return memory.NewStore(), noop, nil
	case "file":
		return file.NewStore(cfg.FilePath), noop, nil
	case "redis":
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		return store, store.Close, nil
	case "sqlite":
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q (expected memory, file, redis or sqlite)", cfg.Store)
	}
}
