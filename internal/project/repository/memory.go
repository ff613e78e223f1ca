package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/geomark/geomark/internal/project"
)

// MemoryRepo is the in-memory project repository used by unit tests and
// database-less local runs.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID uint
	store  map[uint]*project.Project
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1, store: make(map[uint]*project.Project)}
}

func (m *MemoryRepo) List(ctx context.Context) ([]project.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(*project.Project) bool { return true }), nil
}

func (m *MemoryRepo) ListByManager(ctx context.Context, manager string) ([]project.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(p *project.Project) bool { return p.ProjectManager == manager }), nil
}

func (m *MemoryRepo) GetByID(ctx context.Context, id uint) (*project.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryRepo) Create(ctx context.Context, p *project.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.nextID
	m.nextID++
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *MemoryRepo) Update(ctx context.Context, p *project.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.store[p.ID]
	if !ok {
		return ErrNotFound
	}
	cur.ProjectName = p.ProjectName
	cur.Description = p.Description
	cur.ProjectManager = p.ProjectManager
	*p = *cur
	return nil
}

func (m *MemoryRepo) DeleteByID(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *MemoryRepo) collect(match func(*project.Project) bool) []project.Project {
	out := make([]project.Project, 0, len(m.store))
	for _, p := range m.store {
		if match(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
