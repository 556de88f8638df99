package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Validation ValidationConfig `mapstructure:"validation"`
	Security   SecurityConfig   `mapstructure:"security"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string `mapstructure:"port"`
	Host         string `mapstructure:"host"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds configuration for the tool's own Postgres storage
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CacheConfig holds cache TTL configuration
type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	SchemaTTL  int  `mapstructure:"schema_ttl"`
	SummaryTTL int  `mapstructure:"summary_ttl"`
}

// ValidationConfig holds the tunable thresholds of the validation engine.
// Overriding them changes advisory behaviour only, never the compatibility
// classifications.
type ValidationConfig struct {
	DebounceMS          int `mapstructure:"debounce_ms"`
	VarcharWarnLength   int `mapstructure:"varchar_warn_length"`
	TextWarnLength      int `mapstructure:"text_warn_length"`
	MaxVarcharLength    int `mapstructure:"max_varchar_length"`
	MaxDecimalPrecision int `mapstructure:"max_decimal_precision"`
	MaxDecimalScale     int `mapstructure:"max_decimal_scale"`
	QueueWorkers        int `mapstructure:"queue_workers"`
	QueueSize           int `mapstructure:"queue_size"`
}

// SecurityConfig holds management API security configuration
type SecurityConfig struct {
	AdminTokenHash string `mapstructure:"admin_token_hash"`
	EncryptionKey  string `mapstructure:"encryption_key"`
}

// LoadConfig loads configuration from environment and config files
func LoadConfig() (*Config, error) {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("server.idle_timeout", 120)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.schema_ttl", 900)
	viper.SetDefault("cache.summary_ttl", 300)
	viper.SetDefault("validation.debounce_ms", 500)
	viper.SetDefault("validation.varchar_warn_length", 255)
	viper.SetDefault("validation.text_warn_length", 1000)
	viper.SetDefault("validation.max_varchar_length", 65535)
	viper.SetDefault("validation.max_decimal_precision", 65)
	viper.SetDefault("validation.max_decimal_scale", 30)
	viper.SetDefault("validation.queue_workers", 4)
	viper.SetDefault("validation.queue_size", 1000)
	viper.SetDefault("security.admin_token_hash", "")
	// Local development fallback; deployments must override it.
	viper.SetDefault("security.encryption_key", "dev-only-insecure-key")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
