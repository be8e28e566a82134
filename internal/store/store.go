// Package store provides document store backends that resume locales are upserted into.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/resume-importer/internal/types"
)

// ErrNotFound is returned by Get when the document does not exist.
var ErrNotFound = errors.New("document not found")

// Store writes and reads whole documents addressed by collection and id.
type Store interface {
	// Upsert creates or overwrites the document. In merge mode fields already
	// present remotely but absent from payload are kept; in replace mode the
	// document ends up equal to payload.
	Upsert(ctx context.Context, collection, id string, payload map[string]any, mode types.WriteMode) error
	// Get returns the stored document or ErrNotFound.
	Get(ctx context.Context, collection, id string) (map[string]any, error)
	Close() error
}

// Backend names a Store implementation.
type Backend string

// Supported backends
const (
	BackendFirestore Backend = "firestore"
	BackendPostgres  Backend = "postgres"
	BackendMemory    Backend = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend         Backend
	ProjectID       string // Firestore project; detected from credentials when empty
	CredentialsFile string // Firestore service account key
	DatabaseURL     string // PostgreSQL connection URL
}

// Open constructs the backend named in opts. The caller owns the returned
// Store and must Close it.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendFirestore, "":
		f, err := NewFirestore(ctx, opts.ProjectID, opts.CredentialsFile)
		if err != nil {
			return nil, err
		}
		return f, nil
	case BackendPostgres:
		if opts.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres backend requires a database URL")
		}
		p, err := NewPostgres(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return p, nil
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
