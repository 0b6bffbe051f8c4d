package coinage

import (
	"github.com/xraph/coinage/account"
	"github.com/xraph/coinage/types"
)

// Re-export common types for convenience so users don't have to import types package.

// Amount is re-exported from types package.
type Amount = types.Amount

// BasisPoints is re-exported from types package.
type BasisPoints = types.BasisPoints

// Entity is re-exported from types package.
type Entity = types.Entity

// Party is re-exported from account package.
type Party = account.Party

// Re-export Amount helpers
var (
	ParseAmount = types.ParseAmount
	SumAmounts  = types.SumAmounts
)

// Re-export Entity constructor
var NewEntity = types.NewEntity
