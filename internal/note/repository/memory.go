package repository

import (
	"context"
	"sync"

	"github.com/notekit/notekit/backend/go-services/internal/note"
)

// MemoryRepo keeps notes in a map. Used by tests and the "memory" driver.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*note.Note
	opts  options
}

func NewMemoryRepo(opts ...Option) *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*note.Note), opts: buildOptions(opts)}
}

func (m *MemoryRepo) Create(_ context.Context, n *note.Note) (*note.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := n.Clone()
	stored.ID = m.opts.newID()
	for _, exists := m.store[stored.ID]; exists; _, exists = m.store[stored.ID] {
		stored.ID = m.opts.newID()
	}
	stored.CreatedAt = m.opts.timestamp()
	stored.UpdatedAt = stored.CreatedAt
	m.store[stored.ID] = stored
	return stored.Clone(), nil
}

func (m *MemoryRepo) Get(_ context.Context, ownerID, id string) (*note.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if n, ok := m.store[id]; ok && n.UserID == ownerID {
		return n.Clone(), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) List(_ context.Context, ownerID string) ([]*note.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*note.Note, 0)
	for _, n := range m.store {
		if n.UserID == ownerID {
			out = append(out, n.Clone())
		}
	}
	sortByUpdated(out)
	return out, nil
}

func (m *MemoryRepo) Update(_ context.Context, ownerID, id string, p note.Patch) (*note.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.store[id]
	if !ok || n.UserID != ownerID {
		return nil, ErrNotFound
	}
	p.Apply(n)
	n.UpdatedAt = m.opts.timestamp()
	return n.Clone(), nil
}

func (m *MemoryRepo) Delete(_ context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.store[id]
	if !ok || n.UserID != ownerID {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *MemoryRepo) Ping(context.Context) error { return nil }
