package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StoreBuntdb   = "buntdb"
	StorePostgres = "postgres"
)

type config struct {
	Debug        bool   `env:"DEBUG" envDefault:"false"`
	Address      string `env:"ADDRESS" envDefault:":2137"`
	Store        string `env:"STORE" envDefault:"memory"`
	CatalogFile  string `env:"CATALOG_FILE"`
	BuntdbPath   string `env:"BUNTDB_PATH" envDefault:":memory:"`
	PostgresDsn  string `env:"POSTGRES_DSN"`
	LogFile      string `env:"LOG_FILE"`
	AllowOrigins string `env:"ALLOW_ORIGINS" envDefault:"*"`
	RandomSeed   uint64 `env:"RANDOM_SEED" envDefault:"0"`
}

// loadConfig reads optional .env files and then the environment.
// Variables already set in the environment win over the files.
func loadConfig(files ...string) (config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		err := godotenv.Load(file)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.Store {
	case StoreMemory, StoreBuntdb:
	case StorePostgres:
		if cfg.PostgresDsn == "" {
			return config{}, errors.New("POSTGRES_DSN is required for postgres store")
		}
	default:
		return config{}, fmt.Errorf("unknown store %q", cfg.Store)
	}
	return cfg, nil
}
