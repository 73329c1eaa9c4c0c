// Package config loads sideline's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the process settings
type Config struct {
	RedisAddr     string `env:"SIDELINE_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"SIDELINE_REDIS_PASSWORD"`
	RedisDB       int    `env:"SIDELINE_REDIS_DB" envDefault:"0"`

	LogLevel string `env:"SIDELINE_LOG_LEVEL" envDefault:"INFO"`

	// Match updates are posted to Discord only when both are set
	DiscordToken     string `env:"SIDELINE_DISCORD_TOKEN"`
	DiscordChannelID string `env:"SIDELINE_DISCORD_CHANNEL_ID"`
}

// Load reads the given env files, or .env when none are given, then parses
// the environment. Missing env files are ignored and variables already set
// in the environment win over file values.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// DiscordEnabled reports whether match updates should be posted to Discord
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordChannelID != ""
}
