// Package fee defines the transfer fee policy singleton.
package fee

import (
	"github.com/xraph/coinage/id"
	"github.com/xraph/coinage/types"
)

// MaxRateBps bounds Policy.Rate: 1000 basis points, i.e. 10%.
const MaxRateBps types.BasisPoints = 1000

// Policy holds the current fee configuration. Collector is never the
// null identity once set; Rate never exceeds MaxRateBps.
type Policy struct {
	types.Entity
	Rate      types.BasisPoints `json:"rate_bps"`
	Collector id.AccountID      `json:"collector"`
	Enabled   bool              `json:"enabled"`
}

// Compute returns the fee charged on amount under this policy:
// floor(amount * rate / 10000), or zero when the policy is disabled,
// the rate is zero, or no collector is configured. Truncation toward
// zero guarantees principal + fee == amount exactly.
func (p *Policy) Compute(amount types.Amount) types.Amount {
	if !p.Active() {
		return 0
	}
	return amount.ScaleBps(p.Rate)
}

// Active reports whether the policy currently charges fees at all.
func (p *Policy) Active() bool {
	return p.Enabled && p.Rate > 0 && !p.Collector.IsNil()
}

// AppliesTo reports whether a settlement between the two holders is
// subject to the fee. Transfers touching the collector itself settle
// untaxed, so collector payouts are never taxed recursively.
func (p *Policy) AppliesTo(from, to id.AccountID) bool {
	if !p.Active() {
		return false
	}
	return !p.Collector.Equal(from) && !p.Collector.Equal(to)
}
