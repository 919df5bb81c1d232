// Package kv is a best-effort JSON layer over a key-value backend. Reads never
// fail: a missing key, an unreachable backend and undecodable data all read as
// absent. Writes and removals log and swallow errors.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
)

// ErrNotFound is returned by backends for absent keys.
var ErrNotFound = errors.New("kv: key not found")

type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

type Storage struct {
	backend Backend
}

// New wraps backend. A nil backend behaves as an unavailable store.
func New(backend Backend) *Storage {
	return &Storage{backend: backend}
}

// Read decodes the JSON stored under key into a generic value.
func (s *Storage) Read(ctx context.Context, key string) (any, bool) {
	raw, ok := s.ReadRaw(ctx, key)
	if !ok {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		log.Printf("Error decoding %s: %v", key, err)
		return nil, false
	}
	return v, true
}

// ReadRaw returns the stored text under key, if any.
func (s *Storage) ReadRaw(ctx context.Context, key string) (string, bool) {
	if s == nil || s.backend == nil {
		return "", false
	}
	raw, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("Error reading %s: %v", key, err)
		}
		return "", false
	}
	if raw == "" {
		return "", false
	}
	return raw, true
}

func (s *Storage) Write(ctx context.Context, key string, value any) {
	if s == nil || s.backend == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		log.Printf("Error encoding %s: %v", key, err)
		return
	}
	if err := s.backend.Set(ctx, key, string(payload)); err != nil {
		log.Printf("Error writing %s: %v", key, err)
	}
}

func (s *Storage) Remove(ctx context.Context, key string) {
	if s == nil || s.backend == nil {
		return
	}
	if err := s.backend.Del(ctx, key); err != nil {
		log.Printf("Error removing %s: %v", key, err)
	}
}

// MemoryBackend keeps values in process; used when no Redis is configured.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]string)}
}

func (m *MemoryBackend) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryBackend) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryBackend) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

var _ Backend = (*MemoryBackend)(nil)
