package services

import (
	"context"

	"github.com/jwebster45206/gift-hunt/pkg/hunt"
)

// HealthChecker defines basic health check capabilities
type HealthChecker interface {
	// Ping tests the service connection
	Ping(ctx context.Context) error
}

// Closer defines cleanup capabilities
type Closer interface {
	// Close closes the service connection
	Close() error
}

// HuntStore persists hunt snapshots between process restarts.
type HuntStore interface {
	HealthChecker
	Closer

	// SaveHunt stores a snapshot under key
	SaveHunt(ctx context.Context, key string, state *hunt.State) error

	// LoadHunt retrieves a snapshot by key.
	// Returns nil if no snapshot exists
	LoadHunt(ctx context.Context, key string) (*hunt.State, error)

	// DeleteHunt removes a snapshot by key
	DeleteHunt(ctx context.Context, key string) error
}
