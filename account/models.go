// Package account defines holder balance entities and the Party sum type
// used to describe settlement endpoints.
package account

import (
	"github.com/xraph/coinage/id"
	"github.com/xraph/coinage/types"
)

// Balance is one holder's position in the ledger. Holders are created
// implicitly on first credit and removed implicitly when their balance
// returns to zero: absence and zero are equivalent.
type Balance struct {
	types.Entity
	Holder id.AccountID `json:"holder"`
	Amount types.Amount `json:"amount"`
}

// Party identifies one endpoint of a settlement: a real holder account,
// the mint source, or the burn sink. Using an explicit sum type keeps
// null-identity sentinels out of the settlement path. The zero value is
// None, the absent endpoint carried by administrative records.
type Party struct {
	kind   partyKind
	holder id.AccountID
}

type partyKind uint8

const (
	partyNone partyKind = iota
	partyHolder
	partyMint
	partyBurn
)

// None is the absent party. Administrative records that have no
// settlement endpoints carry it on both sides.
var None = Party{}

// MintSource is the party new supply is issued from.
var MintSource = Party{kind: partyMint}

// BurnSink is the party destroyed supply is sent to.
var BurnSink = Party{kind: partyBurn}

// Holder wraps a real holder account as a settlement party.
func Holder(h id.AccountID) Party {
	return Party{kind: partyHolder, holder: h}
}

// ParseParty is the inverse of String.
func ParseParty(s string) (Party, error) {
	switch s {
	case "":
		return None, nil
	case "mint":
		return MintSource, nil
	case "burn":
		return BurnSink, nil
	}
	h, err := id.ParseAccountID(s)
	if err != nil {
		return None, err
	}
	return Holder(h), nil
}

// IsHolder reports whether the party is a real holder account.
func (p Party) IsHolder() bool { return p.kind == partyHolder }

// IsMint reports whether the party is the mint source.
func (p Party) IsMint() bool { return p.kind == partyMint }

// IsBurn reports whether the party is the burn sink.
func (p Party) IsBurn() bool { return p.kind == partyBurn }

// Account returns the holder account behind the party. ok is false for
// every non-holder variant.
func (p Party) Account() (h id.AccountID, ok bool) {
	if p.kind != partyHolder {
		return id.Nil, false
	}
	return p.holder, true
}

// Matches reports whether the party is the given holder account.
func (p Party) Matches(h id.AccountID) bool {
	return p.kind == partyHolder && p.holder.Equal(h)
}

// String renders the party: the holder account string, "mint", "burn",
// or "" for None.
func (p Party) String() string {
	switch p.kind {
	case partyMint:
		return "mint"
	case partyBurn:
		return "burn"
	case partyHolder:
		return p.holder.String()
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Party) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Party) UnmarshalText(text []byte) error {
	parsed, err := ParseParty(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// BalanceUpdate carries the final absolute balance for one holder after
// a settlement. A zero Amount removes the balance row entirely.
type BalanceUpdate struct {
	Holder id.AccountID
	Amount types.Amount
}

// ListOpts controls balance listing.
type ListOpts struct {
	Limit  int
	Offset int
}
