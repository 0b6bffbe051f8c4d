// Package denylist defines the blocked-holder registry entities.
package denylist

import (
	"github.com/xraph/coinage/id"
	"github.com/xraph/coinage/types"
)

// Entry marks one holder as blocked from sending and receiving.
// Membership is boolean: a holder is either present (blocked) or
// absent (unblocked); there is no third state.
type Entry struct {
	types.Entity
	Holder id.AccountID `json:"holder"`
	Reason string       `json:"reason,omitempty"`
}

// ListOpts controls deny-list listing.
type ListOpts struct {
	Limit  int
	Offset int
}
