package settings

import (
	"context"
	"sync"

	"github.com/resumo-news/resumo/pkg/domain"
)

// MemoryStore keeps the settings blob in memory, nothing survives a restart
type MemoryStore struct {
	mu   sync.Mutex
	blob string
}

// NewMemoryStore makes an empty memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWithBlob makes a memory store preloaded with a raw blob
func NewMemoryStoreWithBlob(blob string) *MemoryStore {
	return &MemoryStore{blob: blob}
}

// Load decodes the stored blob
func (m *MemoryStore) Load(_ context.Context) (domain.UserSettings, bool, error) {
	m.mu.Lock()
	blob := m.blob
	m.mu.Unlock()

	if blob == "" {
		return domain.UserSettings{}, false, nil
	}
	s, err := Decode(blob)
	if err != nil {
		return domain.UserSettings{}, true, err
	}
	return s, true, nil
}

// Save replaces the stored blob
func (m *MemoryStore) Save(_ context.Context, s domain.UserSettings) error {
	blob, err := Encode(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.blob = blob
	m.mu.Unlock()
	return nil
}

// Blob returns the raw stored blob
func (m *MemoryStore) Blob() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blob
}
