package store

import (
	"context"

	"github.com/xraph/coinage/account"
	"github.com/xraph/coinage/asset"
	"github.com/xraph/coinage/denylist"
	"github.com/xraph/coinage/event"
	"github.com/xraph/coinage/fee"
	"github.com/xraph/coinage/id"
	"github.com/xraph/coinage/types"
)

// Store is the unified storage interface for all Coinage entities.
// Instead of embedding the sub-interfaces, we explicitly declare all
// methods to avoid naming conflicts.
//
// The engine serializes operations, validates every settlement leg
// before writing, and only then calls the mutators below — drivers
// never see a write that a domain rule rejects.
type Store interface {
	// Asset methods
	GetAsset(ctx context.Context) (*asset.Asset, error)
	PutAsset(ctx context.Context, a *asset.Asset) error

	// Balance methods
	GetBalance(ctx context.Context, holder id.AccountID) (types.Amount, error)
	ApplySettlement(ctx context.Context, updates []account.BalanceUpdate) error
	ListBalances(ctx context.Context, opts account.ListOpts) ([]*account.Balance, error)

	// Deny-list methods
	AddDenied(ctx context.Context, e *denylist.Entry) error
	RemoveDenied(ctx context.Context, holder id.AccountID) error
	IsDenied(ctx context.Context, holder id.AccountID) (bool, error)
	ListDenied(ctx context.Context, opts denylist.ListOpts) ([]*denylist.Entry, error)

	// Fee policy methods
	GetPolicy(ctx context.Context) (*fee.Policy, error)
	PutPolicy(ctx context.Context, p *fee.Policy) error

	// Event journal methods
	AppendEvents(ctx context.Context, records []*event.Record) error
	ListEvents(ctx context.Context, opts event.QueryOpts) ([]*event.Record, error)

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
