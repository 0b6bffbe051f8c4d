// Package plugin provides an extensible plugin system for Coinage.
// Plugins can hook into settlement and administration events to extend
// functionality.
package plugin

import (
	"context"

	"github.com/xraph/coinage/account"
	"github.com/xraph/coinage/event"
	"github.com/xraph/coinage/fee"
	"github.com/xraph/coinage/id"
	"github.com/xraph/coinage/types"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized. The ledger argument
// is the *coinage.Ledger the plugin was registered on.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, l interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Supply lifecycle hooks
// ──────────────────────────────────────────────────

// OnInitialized is called once, when the ledger's asset is created and
// the initial supply is issued.
type OnInitialized interface {
	Plugin
	OnInitialized(ctx context.Context, rec *event.Record) error
}

// OnMinted is called when new supply is issued to a holder.
type OnMinted interface {
	Plugin
	OnMinted(ctx context.Context, rec *event.Record) error
}

// OnBurned is called when a holder destroys part of their balance.
type OnBurned interface {
	Plugin
	OnBurned(ctx context.Context, rec *event.Record) error
}

// ──────────────────────────────────────────────────
// Settlement hooks
// ──────────────────────────────────────────────────

// OnTransferred is called for every settled movement, including the
// principal leg of a fee-split transfer.
type OnTransferred interface {
	Plugin
	OnTransferred(ctx context.Context, rec *event.Record) error
}

// OnFeeCollected is called when a fee leg settles to the collector.
type OnFeeCollected interface {
	Plugin
	OnFeeCollected(ctx context.Context, rec *event.Record) error
}

// OnTransferRejected is called when a transfer, mint or burn is refused
// without mutating state. The error is one of the settlement sentinels.
type OnTransferRejected interface {
	Plugin
	OnTransferRejected(ctx context.Context, from, to account.Party, amount types.Amount, err error) error
}

// ──────────────────────────────────────────────────
// Administration hooks
// ──────────────────────────────────────────────────

// OnDenyListAdded is called when a holder is placed on the deny-list.
type OnDenyListAdded interface {
	Plugin
	OnDenyListAdded(ctx context.Context, holder id.AccountID, reason string) error
}

// OnDenyListRemoved is called when a holder is taken off the deny-list.
type OnDenyListRemoved interface {
	Plugin
	OnDenyListRemoved(ctx context.Context, holder id.AccountID) error
}

// OnPolicyUpdated is called after any fee policy mutation: rate change,
// collector change, or enable toggle.
type OnPolicyUpdated interface {
	Plugin
	OnPolicyUpdated(ctx context.Context, old, updated *fee.Policy) error
}

// OnAdminTransferred is called when the administrator role moves to a
// new identity.
type OnAdminTransferred interface {
	Plugin
	OnAdminTransferred(ctx context.Context, old, updated id.AccountID) error
}

// ──────────────────────────────────────────────────
// Fee strategies
// ──────────────────────────────────────────────────

// FeeStrategy provides custom fee calculation. A registered strategy
// selected by name replaces the built-in basis-point computation; the
// returned fee must never exceed the transfer amount.
type FeeStrategy interface {
	Plugin
	StrategyName() string
	ComputeFee(amount types.Amount, policy *fee.Policy) types.Amount
}
