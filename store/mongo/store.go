// Package mongo provides the MongoDB store for Coinage, backed by
// Grove ORM.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	coinage "github.com/xraph/coinage"
	"github.com/xraph/coinage/account"
	"github.com/xraph/coinage/asset"
	"github.com/xraph/coinage/denylist"
	"github.com/xraph/coinage/event"
	"github.com/xraph/coinage/fee"
	"github.com/xraph/coinage/id"
	coinagestore "github.com/xraph/coinage/store"
	"github.com/xraph/coinage/types"
)

// Collection name constants.
const (
	colAsset    = "coinage_asset"
	colBalances = "coinage_balances"
	colDenylist = "coinage_denylist"
	colPolicy   = "coinage_fee_policy"
	colEvents   = "coinage_events"
)

// compile-time interface check
var _ coinagestore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all coinage collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("coinage/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Asset Store ====================

func (s *Store) GetAsset(ctx context.Context) (*asset.Asset, error) {
	var m assetModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": assetSlot}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, coinage.ErrNotInitialized
		}
		return nil, fmt.Errorf("coinage/mongo: get asset: %w", err)
	}
	return fromAssetModel(&m)
}

func (s *Store) PutAsset(ctx context.Context, a *asset.Asset) error {
	m := toAssetModel(a)
	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": assetSlot}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("coinage/mongo: put asset: %w", err)
	}
	if res.MatchedCount() == 0 {
		if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
			return fmt.Errorf("coinage/mongo: put asset: %w", err)
		}
	}
	return nil
}

// ==================== Balance Store ====================

func (s *Store) GetBalance(ctx context.Context, holder id.AccountID) (types.Amount, error) {
	var m balanceModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": holder.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			// Absence and zero are equivalent.
			return 0, nil
		}
		return 0, fmt.Errorf("coinage/mongo: get balance: %w", err)
	}
	return types.ParseAmount(m.Amount)
}

func (s *Store) ApplySettlement(ctx context.Context, updates []account.BalanceUpdate) error {
	t := now()
	for _, u := range updates {
		key := u.Holder.String()

		if u.Amount.IsZero() {
			_, err := s.mdb.NewDelete((*balanceModel)(nil)).
				Filter(bson.M{"_id": key}).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("coinage/mongo: settle %s: %w", key, err)
			}
			continue
		}

		m := &balanceModel{
			Holder:    key,
			Amount:    u.Amount.String(),
			CreatedAt: t,
			UpdatedAt: t,
		}
		res, err := s.mdb.NewUpdate((*balanceModel)(nil)).
			Filter(bson.M{"_id": key}).
			Set("amount", m.Amount).
			Set("updated_at", t).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("coinage/mongo: settle %s: %w", key, err)
		}
		if res.MatchedCount() == 0 {
			if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
				return fmt.Errorf("coinage/mongo: settle %s: %w", key, err)
			}
		}
	}
	return nil
}

func (s *Store) ListBalances(ctx context.Context, opts account.ListOpts) ([]*account.Balance, error) {
	var models []balanceModel

	q := s.mdb.NewFind(&models).
		Filter(bson.M{}).
		Sort(bson.D{{Key: "_id", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("coinage/mongo: list balances: %w", err)
	}

	result := make([]*account.Balance, len(models))
	for i := range models {
		b, err := fromBalanceModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = b
	}
	return result, nil
}

// ==================== Deny-list Store ====================

func (s *Store) AddDenied(ctx context.Context, e *denylist.Entry) error {
	m := toDenyModel(e)
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return coinage.ErrAlreadyDenied
		}
		return fmt.Errorf("coinage/mongo: add denied: %w", err)
	}
	return nil
}

func (s *Store) RemoveDenied(ctx context.Context, holder id.AccountID) error {
	res, err := s.mdb.NewDelete((*denyModel)(nil)).
		Filter(bson.M{"_id": holder.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("coinage/mongo: remove denied: %w", err)
	}
	if res.DeletedCount() == 0 {
		return coinage.ErrNotDenied
	}
	return nil
}

func (s *Store) IsDenied(ctx context.Context, holder id.AccountID) (bool, error) {
	var m denyModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": holder.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return false, nil
		}
		return false, fmt.Errorf("coinage/mongo: is denied: %w", err)
	}
	return true, nil
}

func (s *Store) ListDenied(ctx context.Context, opts denylist.ListOpts) ([]*denylist.Entry, error) {
	var models []denyModel

	q := s.mdb.NewFind(&models).
		Filter(bson.M{}).
		Sort(bson.D{{Key: "created_at", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("coinage/mongo: list denied: %w", err)
	}

	result := make([]*denylist.Entry, len(models))
	for i := range models {
		e, err := fromDenyModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = e
	}
	return result, nil
}

// ==================== Fee policy Store ====================

func (s *Store) GetPolicy(ctx context.Context) (*fee.Policy, error) {
	var m policyModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": policySlot}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, coinage.ErrNotFound
		}
		return nil, fmt.Errorf("coinage/mongo: get policy: %w", err)
	}
	return fromPolicyModel(&m)
}

func (s *Store) PutPolicy(ctx context.Context, p *fee.Policy) error {
	m := toPolicyModel(p)
	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": policySlot}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("coinage/mongo: put policy: %w", err)
	}
	if res.MatchedCount() == 0 {
		if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
			return fmt.Errorf("coinage/mongo: put policy: %w", err)
		}
	}
	return nil
}

// ==================== Event Store ====================

func (s *Store) AppendEvents(ctx context.Context, records []*event.Record) error {
	if len(records) == 0 {
		return nil
	}
	for _, r := range records {
		m := toEventModel(r)
		if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
			return fmt.Errorf("coinage/mongo: append event: %w", err)
		}
	}
	return nil
}

func (s *Store) ListEvents(ctx context.Context, opts event.QueryOpts) ([]*event.Record, error) {
	var models []eventModel

	filter := bson.M{}
	if opts.Kind != "" {
		filter["kind"] = string(opts.Kind)
	}
	if !opts.Holder.IsNil() {
		h := opts.Holder.String()
		filter["$or"] = bson.A{bson.M{"from_id": h}, bson.M{"to_id": h}}
	}

	// Event IDs are time-sortable, so the secondary key keeps same-instant
	// records in append order.
	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "at", Value: 1}, {Key: "_id", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("coinage/mongo: list events: %w", err)
	}

	result := make([]*event.Record, len(models))
	for i := range models {
		r, err := fromEventModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = r
	}
	return result, nil
}

// ==================== Helpers ====================

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all coinage collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colAsset:    {},
		colBalances: {},
		colDenylist: {
			{Keys: bson.D{{Key: "created_at", Value: 1}}},
		},
		colPolicy: {},
		colEvents: {
			{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "at", Value: 1}}},
			{Keys: bson.D{{Key: "from_id", Value: 1}}},
			{Keys: bson.D{{Key: "to_id", Value: 1}}},
			{Keys: bson.D{{Key: "at", Value: 1}}},
		},
	}
}
