// Package event defines the append-only notification records emitted by
// every mutating ledger operation. Records are output-only: they never
// influence subsequent engine behavior.
package event

import (
	"time"

	"github.com/xraph/coinage/account"
	"github.com/xraph/coinage/id"
	"github.com/xraph/coinage/types"
)

// Kind classifies a ledger event.
type Kind string

// Event kinds for every mutating operation.
const (
	KindInitialized         Kind = "initialized"
	KindTransfer            Kind = "transfer"
	KindFeeCollected        Kind = "fee_collected"
	KindMint                Kind = "mint"
	KindBurn                Kind = "burn"
	KindDenyListAdded       Kind = "denylist_added"
	KindDenyListRemoved     Kind = "denylist_removed"
	KindFeeRateUpdated      Kind = "fee_rate_updated"
	KindFeeCollectorUpdated Kind = "fee_collector_updated"
	KindFeeToggled          Kind = "fee_toggled"
	KindAdminTransferred    Kind = "admin_transferred"
)

// Record is one append-only notification. From is the mint source when
// supply was issued; To is the burn sink when supply was destroyed;
// administrative events carry account.None on both sides and their
// payload in Meta.
type Record struct {
	ID     id.EventID        `json:"id"`
	Kind   Kind              `json:"kind"`
	From   account.Party     `json:"from,omitempty"`
	To     account.Party     `json:"to,omitempty"`
	Amount types.Amount      `json:"amount"`
	At     time.Time         `json:"at"`
	Meta   map[string]string `json:"meta,omitempty"`
}

// QueryOpts filters event listing. Holder matches either endpoint.
type QueryOpts struct {
	Kind   Kind
	Holder id.AccountID
	Limit  int
	Offset int
}
