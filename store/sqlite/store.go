// Package sqlite provides the SQLite store for Coinage, backed by
// Grove ORM. It suits single-node deployments and integration tests.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	"github.com/xraph/grove/migrate"

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

// compile-time interface check
var _ coinagestore.Store = (*Store)(nil)

// Store implements store.Store using SQLite via Grove ORM.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("coinage/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("coinage/sqlite: migration failed: %w", err)
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
	m := new(assetModel)
	err := s.sdb.NewSelect(m).
		Where("slot = ?", assetSlot).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, coinage.ErrNotInitialized
		}
		return nil, err
	}
	return fromAssetModel(m)
}

func (s *Store) PutAsset(ctx context.Context, a *asset.Asset) error {
	m := toAssetModel(a)
	_, err := s.sdb.NewInsert(m).
		OnConflict("(slot) DO UPDATE SET id = EXCLUDED.id, name = EXCLUDED.name, symbol = EXCLUDED.symbol, decimals = EXCLUDED.decimals, ceiling = EXCLUDED.ceiling, issued = EXCLUDED.issued, admin_id = EXCLUDED.admin_id, updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

// ==================== Balance Store ====================

func (s *Store) GetBalance(ctx context.Context, holder id.AccountID) (types.Amount, error) {
	m := new(balanceModel)
	err := s.sdb.NewSelect(m).
		Where("holder = ?", holder.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			// Absence and zero are equivalent.
			return 0, nil
		}
		return 0, err
	}
	return types.ParseAmount(m.Amount)
}

func (s *Store) ApplySettlement(ctx context.Context, updates []account.BalanceUpdate) error {
	t := now()
	for _, u := range updates {
		if u.Amount.IsZero() {
			_, err := s.sdb.NewDelete((*balanceModel)(nil)).
				Where("holder = ?", u.Holder.String()).
				Exec(ctx)
			if err != nil {
				return err
			}
			continue
		}

		m := &balanceModel{
			Holder:    u.Holder.String(),
			Amount:    u.Amount.String(),
			CreatedAt: t,
			UpdatedAt: t,
		}
		_, err := s.sdb.NewInsert(m).
			OnConflict("(holder) DO UPDATE SET amount = EXCLUDED.amount, updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) ListBalances(ctx context.Context, opts account.ListOpts) ([]*account.Balance, error) {
	var models []balanceModel
	q := s.sdb.NewSelect(&models)
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("holder ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	res, err := s.sdb.NewInsert(m).
		OnConflict("(holder) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return coinage.ErrAlreadyDenied
	}
	return nil
}

func (s *Store) RemoveDenied(ctx context.Context, holder id.AccountID) error {
	res, err := s.sdb.NewDelete((*denyModel)(nil)).
		Where("holder = ?", holder.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return coinage.ErrNotDenied
	}
	return nil
}

func (s *Store) IsDenied(ctx context.Context, holder id.AccountID) (bool, error) {
	m := new(denyModel)
	err := s.sdb.NewSelect(m).
		Where("holder = ?", holder.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Store) ListDenied(ctx context.Context, opts denylist.ListOpts) ([]*denylist.Entry, error) {
	var models []denyModel
	q := s.sdb.NewSelect(&models)
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	m := new(policyModel)
	err := s.sdb.NewSelect(m).
		Where("slot = ?", policySlot).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, coinage.ErrNotFound
		}
		return nil, err
	}
	return fromPolicyModel(m)
}

func (s *Store) PutPolicy(ctx context.Context, p *fee.Policy) error {
	m := toPolicyModel(p)
	_, err := s.sdb.NewInsert(m).
		OnConflict("(slot) DO UPDATE SET rate_bps = EXCLUDED.rate_bps, collector = EXCLUDED.collector, enabled = EXCLUDED.enabled, updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

// ==================== Event Store ====================

func (s *Store) AppendEvents(ctx context.Context, records []*event.Record) error {
	if len(records) == 0 {
		return nil
	}
	models := make([]eventModel, len(records))
	for i, r := range records {
		models[i] = *toEventModel(r)
	}
	_, err := s.sdb.NewInsert(&models).Exec(ctx)
	return err
}

func (s *Store) ListEvents(ctx context.Context, opts event.QueryOpts) ([]*event.Record, error) {
	var models []eventModel
	q := s.sdb.NewSelect(&models)

	if opts.Kind != "" {
		q = q.Where("kind = ?", string(opts.Kind))
	}
	if !opts.Holder.IsNil() {
		h := opts.Holder.String()
		q = q.Where("(from_id = ? OR to_id = ?)", h, h)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	// Event IDs are time-sortable, so the secondary key keeps same-instant
	// records in append order.
	q = q.OrderExpr("at ASC, id ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
