package fee

import "context"

// Store is the fee-policy slice of the unified store interface.
type Store interface {
	// GetPolicy returns the current policy. Drivers report a missing
	// policy with the engine's not-found sentinel; the engine writes a
	// disabled zero policy at initialization so this only happens on an
	// uninitialized ledger.
	GetPolicy(ctx context.Context) (*Policy, error)

	// PutPolicy creates or replaces the policy.
	PutPolicy(ctx context.Context, p *Policy) error
}
