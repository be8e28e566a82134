// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-importer/internal/store"
	"github.com/jonathan/resume-importer/internal/types"
	"gopkg.in/yaml.v3"
)

// DefaultCredentialsFile is the service account key looked up when no other
// credentials are configured.
const DefaultCredentialsFile = "./serviceAccountKey.json"

// Environment variables read by ApplyEnv
const (
	EnvBackend     = "RESUME_BACKEND"
	EnvCredentials = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvProjectID   = "FIRESTORE_PROJECT_ID"
	EnvDatabaseURL = "DATABASE_URL"
	EnvCollection  = "RESUME_COLLECTION"

	EnvEmulatorHost = "FIRESTORE_EMULATOR_HOST"
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Store
	Backend         string `json:"backend,omitempty" yaml:"backend,omitempty" validate:"omitempty,oneof=firestore postgres memory"`
	ProjectID       string `json:"project_id,omitempty" yaml:"project_id,omitempty"`             // Firestore project ID
	CredentialsFile string `json:"credentials_file,omitempty" yaml:"credentials_file,omitempty"` // Service account key path
	DatabaseURL     string `json:"database_url,omitempty" yaml:"database_url,omitempty"`         // PostgreSQL connection URL
	Collection      string `json:"collection,omitempty" yaml:"collection,omitempty" validate:"omitempty,excludesall=/"`

	// Work
	Targets []types.ImportTarget `json:"targets,omitempty" yaml:"targets,omitempty" validate:"omitempty,dive"`

	// Behavior
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file, or YAML when the file ends
// in .yaml or .yml. Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv fills empty fields from environment variables.
func (c *Config) ApplyEnv() {
	if c.Backend == "" {
		c.Backend = os.Getenv(EnvBackend)
	}
	if c.CredentialsFile == "" {
		c.CredentialsFile = os.Getenv(EnvCredentials)
	}
	if c.ProjectID == "" {
		c.ProjectID = os.Getenv(EnvProjectID)
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv(EnvDatabaseURL)
	}
	if c.Collection == "" {
		c.Collection = os.Getenv(EnvCollection)
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Backend == string(store.BackendPostgres) && c.DatabaseURL == "" {
		return fmt.Errorf("config error: 'database_url' is required for the postgres backend")
	}

	seen := make(map[string]bool, len(c.Targets))
	for _, t := range c.Targets {
		if seen[t.LocaleCode] {
			return fmt.Errorf("config error: duplicate target locale %q", t.LocaleCode)
		}
		seen[t.LocaleCode] = true
	}

	// Validate file paths exist (if specified); the emulator needs no credentials
	if c.CredentialsFile != "" && c.Backend == string(store.BackendFirestore) && os.Getenv(EnvEmulatorHost) == "" {
		if _, err := os.Stat(c.CredentialsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: credentials file not found: %s", c.CredentialsFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Backend == "" {
		result.Backend = defaults.Backend
	}
	if result.ProjectID == "" {
		result.ProjectID = defaults.ProjectID
	}
	if result.CredentialsFile == "" {
		result.CredentialsFile = defaults.CredentialsFile
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Collection == "" {
		result.Collection = defaults.Collection
	}

	if len(result.Targets) == 0 {
		result.Targets = append([]types.ImportTarget(nil), defaults.Targets...)
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Defaults returns the built-in configuration: Firestore with the service
// account key in the working directory, the resume collection and the
// default locale targets.
func Defaults() Config {
	return Config{
		Backend:         string(store.BackendFirestore),
		CredentialsFile: DefaultCredentialsFile,
		Collection:      types.DefaultCollection,
		Targets:         types.DefaultTargets(),
	}
}

// StoreOptions converts the configuration into store.Options.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:         store.Backend(c.Backend),
		ProjectID:       c.ProjectID,
		CredentialsFile: c.CredentialsFile,
		DatabaseURL:     c.DatabaseURL,
	}
}
