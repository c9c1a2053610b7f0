package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"cryptomobile/internal/models"
)

// Memory is a Store kept in process memory, used when no DATABASE_URL is
// configured and in tests.
type Memory struct {
	mu      sync.RWMutex
	clients map[string]models.Client
	vectors map[string]models.Vector
	audit   []models.AuditLog
	algs    map[string]models.Algorithm
}

func NewMemory() *Memory {
	return &Memory{
		clients: make(map[string]models.Client),
		vectors: make(map[string]models.Vector),
		algs:    make(map[string]models.Algorithm),
	}
}

func (m *Memory) CreateClient(_ context.Context, c *models.Client) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[c.ID] = *c
	return nil
}

func (m *Memory) ListClients(context.Context) ([]models.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cs := make([]models.Client, 0, len(m.clients))
	for _, c := range m.clients {
		cs = append(cs, c)
	}
	sort.Slice(cs, func(i, j int) bool { return cs[i].CreatedAt.After(cs[j].CreatedAt) })
	return cs, nil
}

func (m *Memory) GetClient(_ context.Context, id string) (models.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.clients[id]
	if !ok {
		return models.Client{}, ErrNotFound
	}
	return c, nil
}

func (m *Memory) UpdateClient(_ context.Context, c *models.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.clients[c.ID]
	if !ok {
		return ErrNotFound
	}
	c.CreatedAt = old.CreatedAt
	c.UpdatedAt = time.Now()
	m.clients[c.ID] = *c
	return nil
}

func (m *Memory) DeleteClient(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[id]; !ok {
		return ErrNotFound
	}
	delete(m.clients, id)
	return nil
}

func (m *Memory) SaveVector(_ context.Context, v *models.Vector) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vectors[v.ID] = *v
	return nil
}

func (m *Memory) GetVector(_ context.Context, id string) (models.Vector, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vectors[id]
	if !ok {
		return models.Vector{}, ErrNotFound
	}
	return v, nil
}

func (m *Memory) AppendAudit(_ context.Context, e *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = int64(len(m.audit) + 1)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	m.audit = append(m.audit, *e)
	return nil
}

func (m *Memory) ListAudit(_ context.Context, subject string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > DefaultAuditLimit {
		limit = DefaultAuditLimit
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.AuditLog
	for i := len(m.audit) - 1; i >= 0 && len(out) < limit; i-- {
		if subject == "" || m.audit[i].Subject == subject {
			out = append(out, m.audit[i])
		}
	}
	return out, nil
}

func (m *Memory) SyncAlgorithms(_ context.Context, algs []models.Algorithm) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range algs {
		a.UpdatedAt = time.Now()
		m.algs[a.Name] = a
	}
	return nil
}

func (m *Memory) ListAlgorithms(context.Context) ([]models.Algorithm, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Algorithm, 0, len(m.algs))
	for _, a := range m.algs {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
