package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

type Config struct {
	LogLevel   string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string  `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Storage    Storage `yaml:"storage"`
	Redis      Redis   `yaml:"redis"`
	SQLite     SQLite  `yaml:"sqlite"`
}

type Storage struct {
	Driver     string        `yaml:"driver" env:"STORAGE_DRIVER" env-default:"redis"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"24h"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type SQLite struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"guessbot.db"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadEnv - configuration from the environment and defaults only, for runs without a config file.
func LoadEnv() (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) validate() error {
	switch that.Storage.Driver {
	case StorageRedis, StorageSQLite, StorageMemory:
		return nil
	default:
		return fmt.Errorf("unknown storage driver %q", that.Storage.Driver)
	}
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
