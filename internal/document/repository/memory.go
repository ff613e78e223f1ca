package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/geomark/geomark/internal/document"
)

// MemoryRepo is an in-memory repository used by unit tests and by local runs
// without a database. It mimics the relational store: sequential numeric
// primary keys and a unique document_id.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID uint
	store  map[string]*document.Document // keyed by DocumentID
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1, store: make(map[string]*document.Document)}
}

func (m *MemoryRepo) List(ctx context.Context) ([]document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(*document.Document) bool { return true }), nil
}

func (m *MemoryRepo) ListByCategory(ctx context.Context, category string) ([]document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(d *document.Document) bool { return d.Category == category }), nil
}

func (m *MemoryRepo) SearchDescription(ctx context.Context, term string) ([]document.Document, error) {
	needle := strings.ToLower(term)
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(d *document.Document) bool {
		return strings.Contains(strings.ToLower(d.Description), needle)
	}), nil
}

func (m *MemoryRepo) GetByDocumentID(ctx context.Context, docID string) (*document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.store[docID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *MemoryRepo) ExistsDocumentID(ctx context.Context, docID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.store[docID]
	return ok, nil
}

func (m *MemoryRepo) Create(ctx context.Context, d *document.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[d.DocumentID]; ok {
		return ErrDuplicateID
	}
	d.ID = m.nextID
	m.nextID++
	cp := *d
	m.store[d.DocumentID] = &cp
	return nil
}

func (m *MemoryRepo) Update(ctx context.Context, d *document.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.store[d.DocumentID]
	if !ok {
		return ErrNotFound
	}
	cur.Name = d.Name
	cur.Description = d.Description
	cur.Category = d.Category
	*d = *cur
	return nil
}

func (m *MemoryRepo) DeleteByDocumentID(ctx context.Context, docID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[docID]; !ok {
		return ErrNotFound
	}
	delete(m.store, docID)
	return nil
}

// collect copies matching rows ordered by numeric id, like a table scan.
func (m *MemoryRepo) collect(match func(*document.Document) bool) []document.Document {
	out := make([]document.Document, 0, len(m.store))
	for _, d := range m.store {
		if match(d) {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
