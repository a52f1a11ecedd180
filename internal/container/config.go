// Package container provides dependency injection and lifecycle management
// for the onboarding workflow system following Clean Architecture principles.
package container

import (
	"fmt"
	"time"
)

// Config holds all configuration for the Container.
// It aggregates configurations for all subsystems.
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Templates configuration
	Templates TemplatesConfig

	// Documents configuration
	Documents DocumentsConfig

	// Server configuration
	Server ServerConfig
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// Path to SQLite database file
	Path string

	// MaxOpenConns is the maximum number of open connections
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections
	MaxIdleConns int

	// ConnMaxLifetime is the maximum connection lifetime
	ConnMaxLifetime time.Duration

	// MigrationsDir is the path to migration files
	MigrationsDir string
}

// TemplatesConfig holds the onboarding template catalog settings.
type TemplatesConfig struct {
	// CatalogPath is the path to the YAML template catalog
	CatalogPath string
}

// DocumentsConfig holds generated document storage settings.
type DocumentsConfig struct {
	// BaseDir is the root directory for generated documents
	BaseDir string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host to bind to
	Host string

	// Port to listen on
	Port int

	// ReadTimeout for HTTP server
	ReadTimeout time.Duration

	// WriteTimeout for HTTP server
	WriteTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:            "data/onboarding.db",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
			MigrationsDir:   "migrations",
		},
		Templates: TemplatesConfig{
			CatalogPath: "configs/templates.yaml",
		},
		Documents: DocumentsConfig{
			BaseDir: "generated_documents",
		},
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// Validate checks that required configuration values are present.
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	// Validate template catalog configuration
	if c.Templates.CatalogPath == "" {
		return fmt.Errorf("templates.catalog_path is required")
	}

	// Validate document storage configuration
	if c.Documents.BaseDir == "" {
		return fmt.Errorf("documents.base_dir is required")
	}

	return nil
}
