package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"stocks-api/src/helpers"
	"stocks-api/src/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultName = "stocks-api"
	DefaultHost = "0.0.0.0"
	DefaultPort = 5000
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig builds the configuration from defaults, an optional YAML file,
// an optional .env file and the process environment, in that order.
func NewConfig(configPath string) (*Config, error) {
	modelConfig := models.MConfig{
		Name:      DefaultName,
		Host:      DefaultHost,
		Port:      DefaultPort,
		LogLevel:  "info",
		LogFormat: "console",
	}

	// 1. YAML file, if given
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, helpers.NewConfigurationError(fmt.Sprintf("failed to read config file '%s'", configPath), err)
		}
		if err := yaml.Unmarshal(data, &modelConfig); err != nil {
			return nil, helpers.NewConfigurationError("failed to parse config from YAML", err)
		}
	}

	// 2. .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, helpers.NewConfigurationError("failed to load .env file", err)
	}

	config := &Config{MConfig: &modelConfig}

	// 3. Environment
	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	// 4. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, helpers.NewConfigurationError("config validation failed", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

func (c *Config) applyEnv() error {
	if v := os.Getenv("HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return helpers.NewConfigurationError(fmt.Sprintf("invalid PORT '%s'", v), err)
		}
		c.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.CORSOrigins = append(c.CORSOrigins, origin)
			}
		}
	}
	if v := os.Getenv("DB_TYPE"); v != "" {
		c.Storage.DBType = strings.ToLower(v)
	}
	if v := os.Getenv("DB_SCHEMA"); v != "" {
		c.Storage.Schema = v
	}

	// MONGO_URI is the legacy name of the connection string
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		url = os.Getenv("MONGO_URI")
	}
	if c.Storage.DBType == "" {
		c.Storage.DBType = "postgres"
		if url == "" && c.Storage.DBConnectionString == "" && c.Storage.DBPath != "" {
			c.Storage.DBType = "sqlite"
		}
	}
	if url != "" {
		if c.Storage.DBType == "sqlite" {
			c.Storage.DBPath = url
		} else {
			c.Storage.DBConnectionString = url
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.LogLevel)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log format: %q (must be console or json)", c.LogFormat)
	}

	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	switch c.Storage.DBType {
	case "postgres":
		if c.Storage.DBConnectionString == "" {
			return fmt.Errorf("database connection string cannot be empty for postgres")
		}
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("database path cannot be empty for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database type: %q", c.Storage.DBType)
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
