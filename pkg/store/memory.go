package store

import (
	"context"

	"github.com/benmeehan/locality-agent/pkg/location"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// MemoryStore keeps the record in a concurrent map for the life of the process.
type MemoryStore struct {
	kv cmap.ConcurrentMap[string, string]
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{kv: cmap.New[string]()}
}

func (m *MemoryStore) Load(_ context.Context) (location.Result, bool, error) {
	loc, _ := m.kv.Get(KeyLocation)
	source, _ := m.kv.Get(KeySource)
	result, ok := decode(loc, source)
	return result, ok, nil
}

func (m *MemoryStore) Save(_ context.Context, result location.Result) error {
	if err := validate(result); err != nil {
		return err
	}
	m.kv.MSet(map[string]string{
		KeyLocation: result.Location,
		KeySource:   string(result.Source),
	})
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.kv.Remove(KeyLocation)
	m.kv.Remove(KeySource)
	return nil
}
