package clipboard

import (
	"context"
	"sync"

	"github.com/sathvik2377/timetable-api/internal/models"
)

// Store holds at most one copied slot shared across all edit sessions in the
// process. Copy overwrites silently; Peek never clears.
type Store interface {
	Put(ctx context.Context, slot *models.Slot) error
	Peek(ctx context.Context) (*models.Slot, error)
}

// MemoryStore is the default single-process clipboard.
type MemoryStore struct {
	mu   sync.RWMutex
	slot *models.Slot
}

// NewMemoryStore returns an empty in-memory clipboard.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Put replaces the clipboard content.
func (s *MemoryStore) Put(_ context.Context, slot *models.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slot = slot.Clone()
	return nil
}

// Peek returns a copy of the clipboard content, or nil when empty.
func (s *MemoryStore) Peek(_ context.Context) (*models.Slot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slot.Clone(), nil
}
