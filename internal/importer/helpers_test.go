package importer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-importer/internal/observability"
	"github.com/jonathan/resume-importer/internal/store"
	"github.com/jonathan/resume-importer/internal/types"
	"github.com/stretchr/testify/require"
)

type upsertCall struct {
	Collection string
	ID         string
	Payload    map[string]any
	Mode       types.WriteMode
}

// recordingStore wraps a Memory store, records every Upsert and can be told
// to fail writes for specific document ids.
type recordingStore struct {
	*store.Memory
	calls  []upsertCall
	failOn map[string]error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{Memory: store.NewMemory(), failOn: map[string]error{}}
}

func (r *recordingStore) Upsert(ctx context.Context, collection, id string, payload map[string]any, mode types.WriteMode) error {
	r.calls = append(r.calls, upsertCall{Collection: collection, ID: id, Payload: payload, Mode: mode})
	if err, ok := r.failOn[id]; ok {
		return err
	}
	return r.Memory.Upsert(ctx, collection, id, payload, mode)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestImporter(s store.Store) (*Importer, *bytes.Buffer, *bytes.Buffer) {
	var out, warn bytes.Buffer
	printer := observability.NewPrinter(&out)
	printer.SetWarnOutput(&warn)
	return New(s, "", printer), &out, &warn
}

