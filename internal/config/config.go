package config

import "time"

const (
	StorageBolt     = "bolt"
	StoragePostgres = "postgres"
)

type Config struct {
	App      AppConfig      `env-prefix:"APP_" yaml:"app" toml:"app"`
	HTTP     HTTPConfig     `env-prefix:"HTTP_" yaml:"http" toml:"http"`
	GRPC     GRPCConfig     `env-prefix:"GRPC_" yaml:"grpc" toml:"grpc"`
	Storage  StorageConfig  `env-prefix:"STORAGE_" yaml:"storage" toml:"storage"`
	Database DatabaseConfig `env-prefix:"DB_" yaml:"database" toml:"database"`
}

type HTTPConfig struct {
	Addr           string        `env:"ADDR" env-default:":8081" yaml:"addr" toml:"addr"`
	APIToken       string        `env:"API_TOKEN" yaml:"api_token" toml:"api_token"`
	SessionIdleTTL time.Duration `env:"SESSION_IDLE_TTL" env-default:"15m" yaml:"session_idle_ttl" toml:"session_idle_ttl"`
}

type AppConfig struct {
	LogLevel string `env:"LOG_LEVEL" env-default:"info" yaml:"log_level" toml:"log_level"`
	Pretty   bool   `env:"PRETTY" env-default:"false" yaml:"pretty" toml:"pretty"`
	Seed     bool   `env:"SEED" env-default:"true" yaml:"seed" toml:"seed"`
}

type GRPCConfig struct {
	Addr                string        `env:"ADDR" env-default:":50051" yaml:"addr" toml:"addr"`
	KeepaliveTime       time.Duration `env:"KEEPALIVE_TIME" env-default:"60s" yaml:"keepalive_time" toml:"keepalive_time"`
	KeepaliveTimeout    time.Duration `env:"KEEPALIVE_TIMEOUT" env-default:"30s" yaml:"keepalive_timeout" toml:"keepalive_timeout"`
	HealthProbeInterval time.Duration `env:"HEALTH_PROBE_INTERVAL" env-default:"10s" yaml:"health_probe_interval" toml:"health_probe_interval"`
}

type StorageConfig struct {
	Driver   string `env:"DRIVER" env-default:"bolt" yaml:"driver" toml:"driver"`
	BoltPath string `env:"BOLT_PATH" env-default:"mynotes.db" yaml:"bolt_path" toml:"bolt_path"`
}

type DatabaseConfig struct {
	Port          string `env:"PORT" env-default:"5432" yaml:"port" toml:"port"`
	Host          string `env:"HOST" env-default:"localhost" yaml:"host" toml:"host"`
	Name          string `env:"NAME" env-default:"postgres" yaml:"name" toml:"name"`
	User          string `env:"USER" env-default:"user" yaml:"user" toml:"user"`
	Password      string `env:"PASSWORD" yaml:"password" toml:"password"`
	RetryAttempts uint   `env:"RETRY_ATTEMPTS" env-default:"5" yaml:"retry_attempts" toml:"retry_attempts"`
}
