package denylist

import (
	"context"

	"github.com/xraph/coinage/id"
)

// Store is the deny-list slice of the unified store interface.
// Add and Remove are intentionally not idempotent: re-adding a blocked
// holder or removing an unblocked one fails, so callers always learn
// when the requested state already held.
type Store interface {
	AddDenied(ctx context.Context, e *Entry) error
	RemoveDenied(ctx context.Context, holder id.AccountID) error
	IsDenied(ctx context.Context, holder id.AccountID) (bool, error)
	ListDenied(ctx context.Context, opts ListOpts) ([]*Entry, error)
}
