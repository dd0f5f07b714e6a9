package store

import (
	"context"
	"errors"
	"sync"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// Keys persisted by the application.
const (
	KeyDataSourceURL = "datasource.url"
	SessionPrefix    = "session:"
)

// KeyValue persists small pieces of application state.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Snapshots persists periodic quality aggregates.
type Snapshots interface {
	SaveSnapshot(ctx context.Context, snapshot models.QualitySnapshot) error
}

// MemoryStore is an in-process KeyValue and Snapshots implementation.
type MemoryStore struct {
	mu        sync.RWMutex
	values    map[string]string
	snapshots []models.QualitySnapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value under key.
func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// SaveSnapshot appends a snapshot.
func (m *MemoryStore) SaveSnapshot(_ context.Context, snapshot models.QualitySnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots = append(m.snapshots, snapshot)
	return nil
}

// Snapshots returns a copy of the saved snapshots.
func (m *MemoryStore) Snapshots() []models.QualitySnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.QualitySnapshot(nil), m.snapshots...)
}
