package services

import (
	"context"
	"errors"
	"sync"

	"github.com/jwebster45206/gift-hunt/pkg/hunt"
)

// MockStore is an in-memory HuntStore for tests.
type MockStore struct {
	mu        sync.Mutex
	hunts     map[string]*hunt.State
	pingError error
	saveError error
	saves     int
}

var _ HuntStore = (*MockStore)(nil)

func NewMockStore() *MockStore {
	return &MockStore{
		hunts: make(map[string]*hunt.State),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStore) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

func (m *MockStore) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

func (m *MockStore) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pingError
}

func (m *MockStore) Close() error {
	return nil
}

func (m *MockStore) SaveHunt(ctx context.Context, key string, state *hunt.State) error {
	if state == nil {
		return errors.New("hunt state cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	m.hunts[key] = state
	m.saves++
	return nil
}

func (m *MockStore) LoadHunt(ctx context.Context, key string) (*hunt.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hunts[key], nil
}

func (m *MockStore) DeleteHunt(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.hunts, key)
	return nil
}

// Saves reports how many snapshots were written.
func (m *MockStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
