package event

import "context"

// Store is the event-journal slice of the unified store interface.
// The journal is strictly append-only.
type Store interface {
	AppendEvents(ctx context.Context, records []*Record) error
	ListEvents(ctx context.Context, opts QueryOpts) ([]*Record, error)
}
