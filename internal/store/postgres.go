package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/resume-importer/internal/types"
)

const createDocumentsTable = `CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id TEXT NOT NULL,
	data JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (collection, id)
)`

// Postgres is a Store keeping each document as a JSONB row.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres establishes a connection pool and makes sure the documents
// table exists.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, createDocumentsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create documents table: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Upsert implements Store. Merge mode reads the current row under a row lock,
// merges in Go and writes the result back in the same transaction.
func (p *Postgres) Upsert(ctx context.Context, collection, id string, payload map[string]any, mode types.WriteMode) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	doc := payload
	if mode.IsMerge() {
		existing, err := getDocument(ctx, tx, collection, id, true)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		doc = MergeDocuments(existing, payload)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document %s/%s: %w", collection, id, err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO documents (collection, id, data)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
		collection, id, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert document %s/%s: %w", collection, id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit document %s/%s: %w", collection, id, err)
	}
	return nil
}

// Get implements Store.
func (p *Postgres) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	return getDocument(ctx, p.pool, collection, id, false)
}

// Close closes the connection pool
func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getDocument(ctx context.Context, q querier, collection, id string, forUpdate bool) (map[string]any, error) {
	query := `SELECT data FROM documents WHERE collection = $1 AND id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var content []byte
	if err := q.QueryRow(ctx, query, collection, id).Scan(&content); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, id, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document %s/%s: %w", collection, id, err)
	}
	return doc, nil
}
