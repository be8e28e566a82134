package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/resume-importer/internal/config"
	"github.com/jonathan/resume-importer/internal/store"
)

var (
	configPath      string
	backendFlag     string
	credentialsFlag string
	projectFlag     string
	databaseURLFlag string
	collectionFlag  string
	verboseFlag     bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to JSON or YAML config file")
	flags.StringVar(&backendFlag, "backend", "", "Document store backend: firestore, postgres or memory")
	flags.StringVar(&credentialsFlag, "credentials", "", "Path to Firestore service account key (default ./serviceAccountKey.json)")
	flags.StringVar(&projectFlag, "project", "", "Firestore project ID (detected from credentials if empty)")
	flags.StringVar(&databaseURLFlag, "database-url", "", "PostgreSQL connection URL for the postgres backend")
	flags.StringVar(&collectionFlag, "collection", "", "Collection to write documents into (default resume)")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "Print detailed debug information")
}

// storeOpener constructs the document store for a run.
type storeOpener func(ctx context.Context, opts store.Options) (store.Store, error)

// resolveConfig builds the effective configuration. Precedence is flags, then
// config file, then environment, then built-in defaults. A non-empty
// backendOverride wins over everything.
func resolveConfig(backendOverride string) (*config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if backendFlag != "" {
		cfg.Backend = backendFlag
	}
	if credentialsFlag != "" {
		cfg.CredentialsFile = credentialsFlag
	}
	if projectFlag != "" {
		cfg.ProjectID = projectFlag
	}
	if databaseURLFlag != "" {
		cfg.DatabaseURL = databaseURLFlag
	}
	if collectionFlag != "" {
		cfg.Collection = collectionFlag
	}
	if verboseFlag {
		cfg.Verbose = true
	}
	if backendOverride != "" {
		cfg.Backend = backendOverride
	}

	cfg.ApplyEnv()
	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	if merged.Verbose {
		log.Printf("[config] backend=%s collection=%s targets=%d", merged.Backend, merged.Collection, len(merged.Targets))
	}
	return &merged, nil
}

func openStore(ctx context.Context, cfg *config.Config, open storeOpener) (store.Store, error) {
	s, err := open(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Backend, err)
	}
	return s, nil
}
