package config

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
)

const (
	FileDriver  = "file"
	MySQLDriver = "mysql"
)

type Config struct {
	Host string `default:"0.0.0.0"`
	Port int    `default:"8000"`

	StorageDriver string `default:"file"`
	StorageDir    string `default:"requests"`

	MySQL MySQLConfig

	LogLevel string `default:"info"`
	LogDev   bool
}

type MySQLConfig struct {
	User     string `default:"root"`
	Password string
	Addr     string `default:"127.0.0.1:3306"`
	Database string `default:"subscriber-requests"`
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

var envVars = []struct {
	key string
	set func(*Config, string) error
}{
	{"SUBSCRIBER_HOST", func(c *Config, v string) error { c.Host = v; return nil }},
	{"SUBSCRIBER_PORT", func(c *Config, v string) (err error) { c.Port, err = strconv.Atoi(v); return }},
	{"STORAGE_DRIVER", func(c *Config, v string) error { c.StorageDriver = v; return nil }},
	{"STORAGE_DIR", func(c *Config, v string) error { c.StorageDir = v; return nil }},
	{"MYSQL_USER", func(c *Config, v string) error { c.MySQL.User = v; return nil }},
	{"MYSQL_PASSWORD", func(c *Config, v string) error { c.MySQL.Password = v; return nil }},
	{"MYSQL_ADDR", func(c *Config, v string) error { c.MySQL.Addr = v; return nil }},
	{"MYSQL_DATABASE", func(c *Config, v string) error { c.MySQL.Database = v; return nil }},
	{"LOG_LEVEL", func(c *Config, v string) error { c.LogLevel = v; return nil }},
	{"LOG_DEV", func(c *Config, v string) error { c.LogDev = v == "1" || v == "true"; return nil }},
}

// Load builds the process configuration from struct defaults, an optional
// .env file, the environment and finally the command line, in that order.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()
	return load(os.LookupEnv, os.Args[1:])
}

func load(lookup func(string) (string, bool), args []string) (*Config, error) {
	cfg := new(Config)
	if err := defaults.Set(cfg); err != nil {
		return nil, err
	}

	for _, env := range envVars {
		v, ok := lookup(env.key)
		if !ok || v == "" {
			continue
		}
		if err := env.set(cfg, v); err != nil {
			return nil, fmt.Errorf("config: %s: %w", env.key, err)
		}
	}

	fs := flag.NewFlagSet("subscriber-requests", flag.ContinueOnError)
	fs.StringVar(&cfg.Host, "host", cfg.Host, "address to listen on")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "port to listen on")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Port)
	}
	switch c.StorageDriver {
	case FileDriver:
		if c.StorageDir == "" {
			return fmt.Errorf("config: storage directory is required for the %q driver", FileDriver)
		}
	case MySQLDriver:
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.StorageDriver)
	}
	return nil
}
