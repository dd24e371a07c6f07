package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"holdem-server/internal/util"
)

// Config provides configuration for the hold'em server
type Config struct {
	loaded         bool
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	Store          struct {
		Driver     string `yaml:"driver" envconfig:"driver"`
		PGDSN      string `yaml:"pgDsn" envconfig:"pg_dsn"`
		SQLitePath string `yaml:"sqlitePath" envconfig:"sqlite_path"`
		RedisAddr  string `yaml:"redisAddr" envconfig:"redis_addr"`
		RedisDB    int    `yaml:"redisDb" envconfig:"redis_db"`
		// RedisTTL is how long, in seconds, an idle table is kept
		RedisTTL int `yaml:"redisTtl" envconfig:"redis_ttl"`
	} `yaml:"store"`
	JWT struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	} `yaml:"jwt"`
	Table struct {
		StartingStack  int `yaml:"startingStack" envconfig:"starting_stack"`
		MaxSeats       int `yaml:"maxSeats" envconfig:"max_seats"`
		RaiseIncrement int `yaml:"raiseIncrement" envconfig:"raise_increment"`
		// AIThinkDelay is in milliseconds
		AIThinkDelay int `yaml:"aiThinkDelay" envconfig:"ai_think_delay"`
	} `yaml:"table"`
	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		Format            string `yaml:"format" envconfig:"format"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
}

var config Config

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	cfg := Config{
		MigrationsPath: "file://sql",
	}

	cfg.Store.Driver = "memory"
	cfg.Store.SQLitePath = "holdem.db"
	cfg.Store.RedisAddr = "localhost:6379"
	cfg.Store.RedisTTL = 86400
	cfg.JWT.PublicKey = ".keys/public.pem"
	cfg.JWT.PrivateKey = ".keys/private.key"
	cfg.Table.StartingStack = 1000
	cfg.Table.MaxSeats = 8
	cfg.Table.RaiseIncrement = 20
	cfg.Table.AIThinkDelay = 750
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error; the defaults and the environment are used instead.
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("HOLDEM_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if file != nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("holdem", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
