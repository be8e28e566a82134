package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/jonathan/resume-importer/internal/types"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore is a Store backed by Cloud Firestore.
type Firestore struct {
	client *firestore.Client
}

// NewFirestore connects to Firestore. An empty projectID is detected from the
// credentials; an empty credentialsFile falls back to application default
// credentials (or the emulator when FIRESTORE_EMULATOR_HOST is set).
func NewFirestore(ctx context.Context, projectID, credentialsFile string) (*Firestore, error) {
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &Firestore{client: client}, nil
}

// Upsert implements Store using Set, with MergeAll in merge mode.
func (f *Firestore) Upsert(ctx context.Context, collection, id string, payload map[string]any, mode types.WriteMode) error {
	doc := f.client.Collection(collection).Doc(id)

	var err error
	if mode.IsMerge() {
		_, err = doc.Set(ctx, payload, firestore.MergeAll)
	} else {
		_, err = doc.Set(ctx, payload)
	}
	if err != nil {
		return fmt.Errorf("failed to set %s/%s: %w", collection, id, err)
	}
	return nil
}

// Get implements Store.
func (f *Firestore) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	snap, err := f.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return snap.Data(), nil
}

// Close releases the underlying client.
func (f *Firestore) Close() error {
	return f.client.Close()
}
