// Package config provides configuration management for the application.
// It follows the 12-Factor App methodology by loading configuration
// from environment variables and supporting external configuration files.
//
// 12-Factor App Compliance:
//   - III. Config: Store config in the environment
//   - Configuration is loaded from environment variables
//   - Sensitive data (oracle credentials) only via environment
//   - No config files checked into version control
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
// All fields are populated from environment variables or config files.
type Config struct {
	// App contains application-level configuration
	App AppConfig `mapstructure:"app"`

	// Server contains HTTP server configuration
	Server ServerConfig `mapstructure:"server"`

	// Database contains the embedded store configuration
	Database DatabaseConfig `mapstructure:"database"`

	// Oracle contains the packing oracle connection settings
	Oracle OracleConfig `mapstructure:"oracle"`

	// Packing contains resolution tuning
	Packing PackingConfig `mapstructure:"packing"`

	// Log contains logging configuration
	Log LogConfig `mapstructure:"log"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `mapstructure:"level"`

	// Format is the output format (json, console)
	Format string `mapstructure:"format"`
}

// AppConfig contains application-level configuration.
type AppConfig struct {
	// Name of the application
	Name string `mapstructure:"name"`

	// Environment the application is running in (e.g., development, staging, production)
	Environment string `mapstructure:"environment"`

	// Version of the application
	Version string `mapstructure:"version"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// Host is the server bind address
	Host string `mapstructure:"host"`

	// Port is the server port
	Port int `mapstructure:"port"`

	// ReadTimeout is the maximum duration for reading the entire request, including the body
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the response
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`

	// ShutdownTimeout is the maximum duration for graceful server shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// CORSAllowedOrigins is a list of allowed origins for CORS
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// DatabaseConfig contains the embedded SQLite store configuration.
type DatabaseConfig struct {
	// Path is the filesystem path of the database file
	Path string `mapstructure:"path"`
}

// OracleConfig contains the packing oracle connection settings.
// Credentials must come from the environment; leaving them empty keeps
// the oracle path disabled and every check on the heuristic fallback.
type OracleConfig struct {
	// Endpoint is the full URL of the oracle packing API
	Endpoint string `mapstructure:"endpoint"`

	// Username identifies the oracle account
	Username string `mapstructure:"username"`

	// APIKey authenticates the oracle account
	APIKey string `mapstructure:"api_key"`

	// Timeout bounds a single oracle round-trip
	Timeout time.Duration `mapstructure:"timeout"`
}

// PackingConfig contains resolution tuning.
type PackingConfig struct {
	// Mode selects the checker wiring: "resilient" (oracle with
	// heuristic fallback), "oracle" (no fallback), or "heuristic"
	// (no oracle; deterministic, useful for testing).
	Mode string `mapstructure:"mode"`

	// PageSize is the catalog page size used during resolution
	PageSize int `mapstructure:"page_size"`
}

// Load loads the configuration from environment variables and config files.
// It follows this precedence (highest to lowest):
//  1. Environment variables
//  2. Config file (if provided)
//  3. Default values
//
// Returns:
//   - *Config: The loaded configuration
//   - error: Any error encountered during loading
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/boxpick-go")

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is OK, we'll use env vars and defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("BPS") // Box Picking Service
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "boxpick-go")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})

	// Database defaults
	v.SetDefault("database.path", "./data/boxpick.db")

	// Oracle defaults (credentials intentionally have no default)
	v.SetDefault("oracle.endpoint", "")
	v.SetDefault("oracle.username", "")
	v.SetDefault("oracle.api_key", "")
	v.SetDefault("oracle.timeout", 10*time.Second)

	// Packing defaults
	v.SetDefault("packing.mode", "resilient")
	v.SetDefault("packing.page_size", 20)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// bindEnvVars binds specific environment variables to configuration keys.
func bindEnvVars(v *viper.Viper) {
	// These are explicitly bound for clarity
	v.BindEnv("app.environment", "BPS_ENVIRONMENT")
	v.BindEnv("server.port", "PORT") // Common convention
	v.BindEnv("oracle.username", "BPS_ORACLE_USERNAME")
	v.BindEnv("oracle.api_key", "BPS_ORACLE_API_KEY")
}

// MustLoad loads the configuration and panics on error.
// Use this in application entry points where configuration is required.
//
// Returns:
//   - *Config: The loaded configuration
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}
