package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	CoreAPI   CoreAPIConfig   `mapstructure:"core_api"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Refresher RefresherConfig `mapstructure:"refresher"`
	Chains    ChainsConfig    `mapstructure:"chains"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
	// Output is "stdout" or "stderr".
	Output string `mapstructure:"output"`
}

// CoreAPIConfig holds configuration for the bridge core API data source.
type CoreAPIConfig struct {
	URL         string            `mapstructure:"url"`
	Headers     map[string]string `mapstructure:"headers"`
	QueryParams map[string]string `mapstructure:"query_params"`
	Timeout     time.Duration     `mapstructure:"timeout"`
}

// CacheConfig holds settings for the caching layer.
type CacheConfig struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
	TokenInfoTTL      time.Duration `mapstructure:"token_info_ttl"`
	PoolInfoTTL       time.Duration `mapstructure:"pool_info_ttl"`
}

// RefresherConfig holds settings for the background snapshot refresher.
type RefresherConfig struct {
	Interval     time.Duration `mapstructure:"interval"`
	PoolInterval time.Duration `mapstructure:"pool_interval"`
	RunOnStartup bool          `mapstructure:"run_on_startup"`
}

// ChainsConfig holds settings for the local chain registry.
type ChainsConfig struct {
	// RegistryPath points to a YAML chain table replacing the built-in one. Empty means built-in.
	RegistryPath string `mapstructure:"registry_path"`
}

// Load reads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "bridge-tokeninfo")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("core_api.url", "https://core.api.allbridgecoreapi.net")
	v.SetDefault("core_api.timeout", "15s")
	v.SetDefault("cache.default_expiration", "30m")
	v.SetDefault("cache.cleanup_interval", "1h")
	v.SetDefault("cache.token_info_ttl", "10m")
	v.SetDefault("cache.pool_info_ttl", "1m")
	v.SetDefault("refresher.interval", "5m")
	v.SetDefault("refresher.pool_interval", "30s")
	v.SetDefault("refresher.run_on_startup", true)
	v.SetDefault("chains.registry_path", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		fmt.Printf("Warning: Config file not found in %s or '.', using defaults/env vars\n", configPath)
	}

	v.SetEnvPrefix("BRIDGE_TOKENINFO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// UserAgent is the agent string sent to the core API.
func (c AppConfig) UserAgent() string {
	return c.Name + "/" + c.Version
}

func (c CoreAPIConfig) GetTimeout() time.Duration {
	return c.Timeout
}

func (c CacheConfig) GetDefaultExpiration() time.Duration {
	return c.DefaultExpiration
}

func (c CacheConfig) GetCleanupInterval() time.Duration {
	return c.CleanupInterval
}

func (c CacheConfig) GetTokenInfoTTL() time.Duration {
	return c.TokenInfoTTL
}

func (c CacheConfig) GetPoolInfoTTL() time.Duration {
	return c.PoolInfoTTL
}

func (c RefresherConfig) GetInterval() time.Duration {
	return c.Interval
}

func (c RefresherConfig) GetPoolInterval() time.Duration {
	return c.PoolInterval
}
