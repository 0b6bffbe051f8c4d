// Package asset defines the asset definition and supply state singleton.
package asset

import (
	"github.com/xraph/coinage/id"
	"github.com/xraph/coinage/types"
)

// Asset describes the ledger's single fungible asset and its supply
// state. Ceiling is fixed at initialization and never changes; Issued
// tracks outstanding supply and moves with every mint and burn. Admin
// is the one identity allowed to perform administrative operations.
type Asset struct {
	types.Entity
	ID       id.AssetID   `json:"id"`
	Name     string       `json:"name"`
	Symbol   string       `json:"symbol"`
	Decimals int          `json:"decimals"`
	Ceiling  types.Amount `json:"ceiling"`
	Issued   types.Amount `json:"issued"`
	Admin    id.AccountID `json:"admin"`
}

// Remaining returns the supply headroom still available for minting.
// Issued never exceeds Ceiling, so the subtraction cannot underflow.
func (a *Asset) Remaining() types.Amount {
	r, _ := a.Ceiling.Sub(a.Issued)
	return r
}

// CanIssue reports whether amount more units fit under the ceiling.
func (a *Asset) CanIssue(amount types.Amount) bool {
	issued, ok := a.Issued.Add(amount)
	return ok && issued <= a.Ceiling
}
