package codes

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory Repository used in unit tests and when
// no MongoDB is configured.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*Code
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*Code)}
}

func (m *MemoryRepository) Insert(ctx context.Context, code *Code) (*Code, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	if code.ID == "" {
		code.ID = uuid.NewString()
	}
	code.CreatedAt = now
	code.UpdatedAt = now
	cp := *code
	m.store[code.ID] = &cp
	return code, nil
}

func (m *MemoryRepository) FindAll(ctx context.Context) ([]*Code, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Code, 0, len(m.store))
	for _, code := range m.store {
		cp := *code
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryRepository) FindByOwner(ctx context.Context, ownerID string) ([]*Code, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*Code{}
	for _, code := range m.store {
		if code.OwnerID == ownerID {
			cp := *code
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MemoryRepository) FindByID(ctx context.Context, id string) (*Code, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	code, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *code
	return &cp, nil
}

func (m *MemoryRepository) Update(ctx context.Context, id string, patch Patch) (*Code, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	code, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Language != nil {
		code.Language = *patch.Language
	}
	if patch.Body != nil {
		code.Body = *patch.Body
	}
	code.UpdatedAt = time.Now().UTC()
	cp := *code
	return &cp, nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *MemoryRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, code := range m.store {
		if code.OwnerID == ownerID {
			delete(m.store, id)
			n++
		}
	}
	return n, nil
}
