// Package config loads server settings from flags, environment
// variables, and an optional config file, adapted from the teacher's
// config.go (armandParser-gofast-server).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable the server reads at startup.
type Config struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	MaxClients int           `mapstructure:"max_clients"`
	Timeout    time.Duration `mapstructure:"timeout"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	MaxBulkLen int `mapstructure:"max_bulk_len"`

	ActiveExpireInterval time.Duration `mapstructure:"active_expire_interval"`

	AdminAddr    string `mapstructure:"admin_addr"`
	AdminEnabled bool   `mapstructure:"admin_enabled"`

	TCPKeepAlive bool          `mapstructure:"tcp_keepalive"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DefaultConfig returns a Config with the out-of-the-box defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:                 "localhost",
		Port:                 6379,
		MaxClients:           10000,
		Timeout:              30 * time.Second,
		LogLevel:             "info",
		LogFormat:            "text",
		MaxBulkLen:           512 * 1024 * 1024,
		ActiveExpireInterval: 100 * time.Millisecond,
		AdminAddr:            ":9121",
		AdminEnabled:         true,
		TCPKeepAlive:         true,
		ReadTimeout:          30 * time.Second,
		WriteTimeout:         30 * time.Second,
	}
}

// LoadConfig reads configuration from an optional gofast.yaml config
// file, environment variables, and any flags already bound to viper by
// the caller, in that ascending order of precedence.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("gofast")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/gofast/")
	viper.AddConfigPath("$HOME/.gofast")

	viper.SetEnvPrefix("GOFAST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("max_clients", cfg.MaxClients)
	viper.SetDefault("timeout", cfg.Timeout)
	viper.SetDefault("log_level", cfg.LogLevel)
	viper.SetDefault("log_format", cfg.LogFormat)
	viper.SetDefault("max_bulk_len", cfg.MaxBulkLen)
	viper.SetDefault("active_expire_interval", cfg.ActiveExpireInterval)
	viper.SetDefault("admin_addr", cfg.AdminAddr)
	viper.SetDefault("admin_enabled", cfg.AdminEnabled)
	viper.SetDefault("tcp_keepalive", cfg.TCPKeepAlive)
	viper.SetDefault("read_timeout", cfg.ReadTimeout)
	viper.SetDefault("write_timeout", cfg.WriteTimeout)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 1-65535)", c.Port)
	}
	if c.MaxClients < 1 {
		return fmt.Errorf("max_clients must be at least 1")
	}
	if c.MaxBulkLen < 1 {
		return fmt.Errorf("max_bulk_len must be at least 1")
	}
	if c.ActiveExpireInterval < time.Millisecond {
		return fmt.Errorf("active_expire_interval must be at least 1ms")
	}

	validLogLevels := []string{"trace", "debug", "info", "warn", "error", "fatal"}
	valid := false
	for _, level := range validLogLevels {
		if c.LogLevel == level {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid log_level: %s (must be one of: %s)",
			c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf("gofast config: %s:%d, admin=%s, log_level=%s", c.Host, c.Port, c.AdminAddr, c.LogLevel)
}
