package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Debug      bool          `yaml:"debug" env:"DEBUG"`
	AppSecret  string        `yaml:"app_secret" env:"APP_SECRET"`
	Storage    Storage       `yaml:"storage"`
	Server     Server        `yaml:"server"`
	DB         DB            `yaml:"db"`
	Clients    ClientsConfig `yaml:"clients"`
	Aggregator Aggregator    `yaml:"aggregator"`
	Tasks      Tasks         `yaml:"tasks"`
	CORS       CORS          `yaml:"cors"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
}

type Client struct {
	// Empty Addr turns the client off.
	Addr         string        `yaml:"addr" env:"SSO_ADDR"`
	RetryTimeout time.Duration `yaml:"retry_timeout" env-default:"1s"`
	RetriesCount int           `yaml:"retries_count" env-default:"1"`
}

type ClientsConfig struct {
	SSO Client `yaml:"sso"`
}

type Server struct {
	Port string `yaml:"port" env:"PORT" env-default:"8000"`
	Host string `yaml:"host" env:"HOST" env-default:"localhost"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"2s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"5s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type DB struct {
	Dsn             string        `yaml:"dsn" env:"DB_DSN"`
	MaxConns        int           `yaml:"max_conns" env-default:"25"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env-default:"10m"`
}

type Aggregator struct {
	MaxRetries       int           `yaml:"max_retries" env-default:"3"`
	RetryDelay       time.Duration `yaml:"retry_delay" env-default:"50ms"`
	Timeout          time.Duration `yaml:"timeout" env-default:"5s"`
	ReconcileOnStart bool          `yaml:"reconcile_on_start" env:"AGGREGATOR_RECONCILE_ON_START"`
}

type Tasks struct {
	Workers   int `yaml:"workers" env-default:"4"`
	QueueSize int `yaml:"queue_size" env-default:"100"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

func Load(configPath string) (*Config, error) {
	var cfg Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file %s not found", configPath)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) validate() error {
	if c.AppSecret == "" {
		return errors.New("app_secret is required")
	}
	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.DB.Dsn == "" {
			return errors.New("db.dsn is required for the postgres storage driver")
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}
