package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type CacheConfig struct {
	DefaultTTL int64 `yaml:"default_ttl"`
}

type ResolverConfig struct {
	Timeout int `yaml:"timeout"` // seconds allowed per strategy attempt
}

type LogConfig struct {
	File string `yaml:"file"`
}

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Resolver ResolverConfig `yaml:"resolver"`
	Log      LogConfig      `yaml:"log"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "dns_cache.db"},
		Cache:    CacheConfig{DefaultTTL: 300},
		Resolver: ResolverConfig{Timeout: 5},
		Log:      LogConfig{File: "dns_cache.log"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "dns_cache.db"
	}
	if cfg.Cache.DefaultTTL == 0 {
		cfg.Cache.DefaultTTL = 300
	}
	if cfg.Cache.DefaultTTL < 0 {
		return nil, fmt.Errorf("cache.default_ttl must be positive, got %d", cfg.Cache.DefaultTTL)
	}
	if cfg.Resolver.Timeout == 0 {
		cfg.Resolver.Timeout = 5
	}
	if cfg.Resolver.Timeout < 0 {
		return nil, fmt.Errorf("resolver.timeout must not be negative, got %d", cfg.Resolver.Timeout)
	}
	if cfg.Log.File == "" {
		cfg.Log.File = "dns_cache.log"
	}
	return &cfg, nil
}
