package sqlite

import (
	"encoding/json"
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/coinage/account"
	"github.com/xraph/coinage/asset"
	"github.com/xraph/coinage/denylist"
	"github.com/xraph/coinage/event"
	"github.com/xraph/coinage/fee"
	"github.com/xraph/coinage/id"
	"github.com/xraph/coinage/types"
)

// Singleton rows (the asset and the fee policy) key on a fixed slot so
// upserts always land on the same row.
const (
	assetSlot  = "asset"
	policySlot = "policy"
)

// Amounts are stored as decimal strings: the full uint64 range does not
// fit a signed BIGINT.

// ==================== Asset model ====================

type assetModel struct {
	grove.BaseModel `grove:"table:coinage_asset"`

	Slot      string    `grove:"slot,pk"`
	ID        string    `grove:"id"`
	Name      string    `grove:"name"`
	Symbol    string    `grove:"symbol"`
	Decimals  int       `grove:"decimals"`
	Ceiling   string    `grove:"ceiling"`
	Issued    string    `grove:"issued"`
	AdminID   string    `grove:"admin_id"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

func toAssetModel(a *asset.Asset) *assetModel {
	return &assetModel{
		Slot:      assetSlot,
		ID:        a.ID.String(),
		Name:      a.Name,
		Symbol:    a.Symbol,
		Decimals:  a.Decimals,
		Ceiling:   a.Ceiling.String(),
		Issued:    a.Issued.String(),
		AdminID:   a.Admin.String(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func fromAssetModel(m *assetModel) (*asset.Asset, error) {
	assetID, err := id.ParseAssetID(m.ID)
	if err != nil {
		return nil, err
	}
	admin, err := id.ParseAccountID(m.AdminID)
	if err != nil {
		return nil, err
	}
	ceiling, err := types.ParseAmount(m.Ceiling)
	if err != nil {
		return nil, err
	}
	issued, err := types.ParseAmount(m.Issued)
	if err != nil {
		return nil, err
	}

	return &asset.Asset{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:       assetID,
		Name:     m.Name,
		Symbol:   m.Symbol,
		Decimals: m.Decimals,
		Ceiling:  ceiling,
		Issued:   issued,
		Admin:    admin,
	}, nil
}

// ==================== Balance model ====================

type balanceModel struct {
	grove.BaseModel `grove:"table:coinage_balances"`

	Holder    string    `grove:"holder,pk"`
	Amount    string    `grove:"amount"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

func fromBalanceModel(m *balanceModel) (*account.Balance, error) {
	holder, err := id.ParseAccountID(m.Holder)
	if err != nil {
		return nil, err
	}
	amount, err := types.ParseAmount(m.Amount)
	if err != nil {
		return nil, err
	}

	return &account.Balance{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Holder: holder,
		Amount: amount,
	}, nil
}

// ==================== Deny-list model ====================

type denyModel struct {
	grove.BaseModel `grove:"table:coinage_denylist"`

	Holder    string    `grove:"holder,pk"`
	Reason    string    `grove:"reason"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

func toDenyModel(e *denylist.Entry) *denyModel {
	return &denyModel{
		Holder:    e.Holder.String(),
		Reason:    e.Reason,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func fromDenyModel(m *denyModel) (*denylist.Entry, error) {
	holder, err := id.ParseAccountID(m.Holder)
	if err != nil {
		return nil, err
	}

	return &denylist.Entry{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Holder: holder,
		Reason: m.Reason,
	}, nil
}

// ==================== Fee policy model ====================

type policyModel struct {
	grove.BaseModel `grove:"table:coinage_fee_policy"`

	Slot      string    `grove:"slot,pk"`
	RateBps   int64     `grove:"rate_bps"`
	Collector string    `grove:"collector"`
	Enabled   bool      `grove:"enabled"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

func toPolicyModel(p *fee.Policy) *policyModel {
	collector := ""
	if !p.Collector.IsNil() {
		collector = p.Collector.String()
	}
	return &policyModel{
		Slot:      policySlot,
		RateBps:   int64(p.Rate),
		Collector: collector,
		Enabled:   p.Enabled,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func fromPolicyModel(m *policyModel) (*fee.Policy, error) {
	collector := id.Nil
	if m.Collector != "" {
		parsed, err := id.ParseAccountID(m.Collector)
		if err != nil {
			return nil, err
		}
		collector = parsed
	}

	return &fee.Policy{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Rate:      types.BasisPoints(m.RateBps),
		Collector: collector,
		Enabled:   m.Enabled,
	}, nil
}

// ==================== Event model ====================

type eventModel struct {
	grove.BaseModel `grove:"table:coinage_events"`

	ID     string    `grove:"id,pk"`
	Kind   string    `grove:"kind"`
	FromID string    `grove:"from_id"`
	ToID   string    `grove:"to_id"`
	Amount string    `grove:"amount"`
	At     time.Time `grove:"at"`
	// SQLite has no native JSON column, so meta is stored serialized.
	Meta string `grove:"meta"`
}

// Endpoint columns hold the party encoding: a holder account string,
// "mint", "burn", or empty for administrative records.
func toEventModel(r *event.Record) *eventModel {
	meta := "{}"
	if len(r.Meta) > 0 {
		raw, _ := json.Marshal(r.Meta) //nolint:errcheck // string map cannot fail
		meta = string(raw)
	}
	return &eventModel{
		ID:     r.ID.String(),
		Kind:   string(r.Kind),
		FromID: r.From.String(),
		ToID:   r.To.String(),
		Amount: r.Amount.String(),
		At:     r.At,
		Meta:   meta,
	}
}

func fromEventModel(m *eventModel) (*event.Record, error) {
	eventID, err := id.ParseEventID(m.ID)
	if err != nil {
		return nil, err
	}
	amount, err := types.ParseAmount(m.Amount)
	if err != nil {
		return nil, err
	}
	from, err := account.ParseParty(m.FromID)
	if err != nil {
		return nil, err
	}
	to, err := account.ParseParty(m.ToID)
	if err != nil {
		return nil, err
	}

	var meta map[string]string
	if m.Meta != "" && m.Meta != "{}" {
		if err := json.Unmarshal([]byte(m.Meta), &meta); err != nil {
			return nil, err
		}
	}

	return &event.Record{
		ID:     eventID,
		Kind:   event.Kind(m.Kind),
		From:   from,
		To:     to,
		Amount: amount,
		At:     m.At,
		Meta:   meta,
	}, nil
}
