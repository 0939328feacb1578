package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the gateway. Values are immutable after
// Load; every component receives the slice it needs through its constructor.
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

// CatalogConfig holds upstream catalog API configuration
type CatalogConfig struct {
	BaseURL              string `mapstructure:"base_url"`
	BearerToken          string `mapstructure:"bearer_token"`
	Timeout              int    `mapstructure:"timeout"`
	SlowThreshold        int    `mapstructure:"slow_threshold"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
}

// CacheConfig holds local reference-data storage configuration
type CacheConfig struct {
	Backend        string `mapstructure:"backend"`
	Dir            string `mapstructure:"dir"`
	CategoriesFile string `mapstructure:"categories_file"`
	FieldsFile     string `mapstructure:"fields_file"`
}

// RedisConfig holds Redis connection details for the redis cache backend
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

// CategoriesPath is the location of the category cache document.
func (c CacheConfig) CategoriesPath() string {
	return filepath.Join(c.Dir, c.CategoriesFile)
}

// FieldsPath is the location of the field-schema reference document.
func (c CacheConfig) FieldsPath() string {
	return filepath.Join(c.Dir, c.FieldsFile)
}

// Load loads configuration from an optional YAML file with environment
// variable overrides. The gateway is embedded by a presentation layer, so a
// missing config.yaml is fine: the environment and defaults carry it.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("catalog.base_url", "http://localhost:1234")
	viper.SetDefault("catalog.bearer_token", "")
	viper.SetDefault("catalog.timeout", 15)
	viper.SetDefault("catalog.slow_threshold", 5)
	viper.SetDefault("catalog.max_requests_per_second", 10)

	viper.SetDefault("cache.backend", "file")
	viper.SetDefault("cache.dir", "json")
	viper.SetDefault("cache.categories_file", "categories.json")
	viper.SetDefault("cache.fields_file", "product_attributes.json")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.database", 0)
}
