package account

import (
	"context"

	"github.com/xraph/coinage/id"
	"github.com/xraph/coinage/types"
)

// Store is the balance slice of the unified store interface.
type Store interface {
	// GetBalance returns the holder's balance, zero for unknown holders.
	GetBalance(ctx context.Context, holder id.AccountID) (types.Amount, error)

	// ApplySettlement commits a set of final balances as one unit.
	// Drivers must apply all updates or none.
	ApplySettlement(ctx context.Context, updates []BalanceUpdate) error

	// ListBalances returns all nonzero balances.
	ListBalances(ctx context.Context, opts ListOpts) ([]*Balance, error)
}
