package config

import (
	"fmt"
	"strings"
)

// PostgresConfig holds configuration for the test-run history database
type PostgresConfig struct {
	User       string
	Password   string
	Database   string
	Host       string
	Port       string
	SSLMode    string
	SearchPath string
}

// PostgresEnabled reports whether a results database has been configured.
// Run history is optional; without POSTGRES_HOSTNAME nothing is recorded.
func PostgresEnabled(getenv func(string) string) bool {
	return getenv("POSTGRES_HOSTNAME") != ""
}

// LoadPostgresConfig loads PostgreSQL configuration from environment variables
func LoadPostgresConfig(getenv func(string) string) (*PostgresConfig, error) {
	config := &PostgresConfig{
		User:     getenv("POSTGRES_USER"),
		Password: getenv("POSTGRES_PASSWORD"),
		Database: getenv("POSTGRES_DB"),
		Host:     getenv("POSTGRES_HOSTNAME"),
		Port:     getenv("POSTGRES_PORT"),
		SSLMode:  getenv("POSTGRES_SSLMODE"),
	}

	var missing []string
	if config.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if config.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if config.Database == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if config.Host == "" {
		missing = append(missing, "POSTGRES_HOSTNAME")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s required", strings.Join(missing, ", "))
	}

	if config.Port == "" {
		config.Port = "5432"
	}
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	return config, nil
}

// ConnectionString returns a lib/pq key/value connection string
func (c *PostgresConfig) ConnectionString() string {
	s := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
	if c.SearchPath != "" {
		s += " search_path=" + c.SearchPath
	}
	return s
}
