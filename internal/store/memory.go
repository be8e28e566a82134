package store

import (
	"context"
	"sync"

	"github.com/jonathan/resume-importer/internal/types"
)

// Memory is a process-local Store. Documents are deep-copied on the way in
// and out so callers cannot alias stored state.
type Memory struct {
	mu   sync.Mutex
	docs map[string]map[string]map[string]any
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]map[string]map[string]any)}
}

// Upsert implements Store.
func (m *Memory) Upsert(_ context.Context, collection, id string, payload map[string]any, mode types.WriteMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	coll, ok := m.docs[collection]
	if !ok {
		coll = make(map[string]map[string]any)
		m.docs[collection] = coll
	}

	if mode.IsMerge() {
		coll[id] = MergeDocuments(coll[id], payload)
		return nil
	}

	doc := cloneMap(payload)
	if doc == nil {
		doc = map[string]any{}
	}
	coll[id] = doc
	return nil
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, collection, id string) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneMap(doc), nil
}

// Put seeds a document directly, bypassing write-mode handling. Tests use it
// to stage prior remote state.
func (m *Memory) Put(collection, id string, doc map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[collection]; !ok {
		m.docs[collection] = make(map[string]map[string]any)
	}
	m.docs[collection][id] = cloneMap(doc)
}

// Len returns the number of documents in a collection. The dry-run report uses it.
func (m *Memory) Len(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs[collection])
}

// Close implements Store.
func (m *Memory) Close() error {
	return nil
}
