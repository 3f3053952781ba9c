package config

import (
	"fmt"
	"net"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

func Parse() (Config, error) {
	godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse cfg: %v", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("parse cfg: %v", err)
	}

	return cfg, nil
}

// ParseFile reads a yaml/toml/json/env file; environment variables override it.
func ParseFile(path string) (Config, error) {
	godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse cfg file %s: %v", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("parse cfg file %s: %v", path, err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.Storage.Driver {
	case StorageBolt:
		if c.Storage.BoltPath == "" {
			return fmt.Errorf("bolt path is required")
		}
	case StoragePostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	return nil
}

func (d DatabaseConfig) Addr() string {
	return net.JoinHostPort(d.Host, d.Port)
}
