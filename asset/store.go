package asset

import "context"

// Store is the asset slice of the unified store interface.
type Store interface {
	// GetAsset returns the asset definition. Drivers report an
	// uninitialized ledger with the engine's not-initialized sentinel.
	GetAsset(ctx context.Context) (*Asset, error)

	// PutAsset creates or replaces the asset definition.
	PutAsset(ctx context.Context, a *Asset) error
}
