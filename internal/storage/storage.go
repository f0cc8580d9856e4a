// Package storage provides the tiered key-value store the client keeps its
// local state in: an ordered list of backends, written through in sequence
// and read in preference order. A backend that is unavailable (disabled,
// unreachable, unwritable) is skipped silently so that losing one tier never
// breaks the client.
package storage

import (
	"context"
	"log"
)

type Backend interface {
	Name() string
	// Available reports whether this tier can currently be used. Adapters
	// probe before every operation so a tier can come and go at runtime.
	Available(ctx context.Context) bool
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type Adapter struct {
	backends []Backend
	logger   *log.Logger
}

// NewAdapter builds an adapter over backends in read-preference order: the
// first backend is the session tier, later ones the durable tiers.
func NewAdapter(logger *log.Logger, backends ...Backend) *Adapter {
	return &Adapter{backends: backends, logger: logger}
}

// Set writes the value to every available tier. Tier failures are logged
// and skipped; Set itself never fails.
func (a *Adapter) Set(ctx context.Context, key, value string) {
	for _, b := range a.backends {
		if !b.Available(ctx) {
			continue
		}
		if err := b.Set(ctx, key, value); err != nil {
			a.logger.Printf("storage: set %q on %s: %v", key, b.Name(), err)
		}
	}
}

// Get returns the value from the first tier that has it.
func (a *Adapter) Get(ctx context.Context, key string) (string, bool) {
	for _, b := range a.backends {
		if !b.Available(ctx) {
			continue
		}
		v, ok, err := b.Get(ctx, key)
		if err != nil {
			a.logger.Printf("storage: get %q on %s: %v", key, b.Name(), err)
			continue
		}
		if ok {
			return v, true
		}
	}
	return "", false
}

// Remove deletes the key from every available tier.
func (a *Adapter) Remove(ctx context.Context, key string) {
	for _, b := range a.backends {
		if !b.Available(ctx) {
			continue
		}
		if err := b.Remove(ctx, key); err != nil {
			a.logger.Printf("storage: remove %q on %s: %v", key, b.Name(), err)
		}
	}
}
