// Package config loads the TOML configuration shared by the mint command.
// Every field has a default, so an empty path or a partial file is valid.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"github.com/mahdiidarabi/blindcoin/pkg/coin"
)

// MinKeyBits is the smallest bank key Validate accepts.
const MinKeyBits = 1024

// Config holds configurable options for minting.
type Config struct {
	ShareCount        int    `toml:"share_count"`
	BankKeyFile       string `toml:"bank_key_file"`
	BankPublicKeyFile string `toml:"bank_public_key_file"`
	KeyBits           int    `toml:"key_bits"`
	LogLevel          string `toml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		ShareCount: coin.DefaultShareCount,
		KeyBits:    2048,
		LogLevel:   "info",
	}
}

// Load reads path over the defaults. An empty path returns the defaults;
// a path that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the minter cannot use.
func (c *Config) Validate() error {
	if c.ShareCount < 1 {
		return fmt.Errorf("share_count must be at least 1, got %d", c.ShareCount)
	}
	if c.KeyBits < MinKeyBits {
		return fmt.Errorf("key_bits must be at least %d, got %d", MinKeyBits, c.KeyBits)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
