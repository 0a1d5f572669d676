package store

import (
	"context"
	"sync"
)

// Memory is the in-memory Store used when no database is configured.
type Memory struct {
	mu       sync.Mutex
	profiles map[string]string
	sessions []SessionRecord
}

func NewMemory() *Memory {
	return &Memory{profiles: make(map[string]string)}
}

func (m *Memory) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[key] = value
	return nil
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.profiles[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) SaveSession(_ context.Context, rec SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, rec)
	return nil
}

func (m *Memory) Recent(_ context.Context, limit int) ([]SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.sessions)
	if limit > n {
		limit = n
	}
	out := make([]SessionRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, m.sessions[i])
	}
	return out, nil
}
