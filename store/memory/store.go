// Package memory provides the in-process reference store. It backs unit
// tests and hosts that keep ledger state in memory with their own
// persistence hooks.
package memory

import (
	"context"
	"sync"

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

// Store implements store.Store with plain maps under a RWMutex.
type Store struct {
	mu sync.RWMutex

	// Singletons
	asset  *asset.Asset
	policy *fee.Policy

	// Balance storage, keyed by holder ID
	balances map[string]*account.Balance

	// Deny-list storage, keyed by holder ID
	denied map[string]*denylist.Entry

	// Append-only event journal
	events []*event.Record

	closed bool
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		balances: make(map[string]*account.Balance),
		denied:   make(map[string]*denylist.Entry),
		events:   make([]*event.Record, 0),
	}
}

// ==================== Asset ====================

func (s *Store) GetAsset(_ context.Context) (*asset.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(); err != nil {
		return nil, err
	}
	if s.asset == nil {
		return nil, coinage.ErrNotInitialized
	}

	cp := *s.asset
	return &cp, nil
}

func (s *Store) PutAsset(_ context.Context, a *asset.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}

	cp := *a
	s.asset = &cp
	return nil
}

// ==================== Balances ====================

func (s *Store) GetBalance(_ context.Context, holder id.AccountID) (types.Amount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(); err != nil {
		return 0, err
	}

	// Unknown holders have a zero balance; absence and zero are equivalent.
	if b, ok := s.balances[holder.String()]; ok {
		return b.Amount, nil
	}
	return 0, nil
}

func (s *Store) ApplySettlement(_ context.Context, updates []account.BalanceUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}

	for _, u := range updates {
		key := u.Holder.String()

		if u.Amount.IsZero() {
			delete(s.balances, key)
			continue
		}

		if b, ok := s.balances[key]; ok {
			b.Amount = u.Amount
			b.Touch()
			continue
		}
		s.balances[key] = &account.Balance{
			Entity: types.NewEntity(),
			Holder: u.Holder,
			Amount: u.Amount,
		}
	}
	return nil
}

func (s *Store) ListBalances(_ context.Context, opts account.ListOpts) ([]*account.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(); err != nil {
		return nil, err
	}

	result := make([]*account.Balance, 0, len(s.balances))
	for _, b := range s.balances {
		cp := *b
		result = append(result, &cp)
	}

	return page(result, opts.Offset, opts.Limit), nil
}

// ==================== Deny-list ====================

func (s *Store) AddDenied(_ context.Context, e *denylist.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}

	key := e.Holder.String()
	if _, exists := s.denied[key]; exists {
		return coinage.ErrAlreadyDenied
	}

	cp := *e
	s.denied[key] = &cp
	return nil
}

func (s *Store) RemoveDenied(_ context.Context, holder id.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}

	key := holder.String()
	if _, exists := s.denied[key]; !exists {
		return coinage.ErrNotDenied
	}

	delete(s.denied, key)
	return nil
}

func (s *Store) IsDenied(_ context.Context, holder id.AccountID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(); err != nil {
		return false, err
	}

	_, exists := s.denied[holder.String()]
	return exists, nil
}

func (s *Store) ListDenied(_ context.Context, opts denylist.ListOpts) ([]*denylist.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(); err != nil {
		return nil, err
	}

	result := make([]*denylist.Entry, 0, len(s.denied))
	for _, e := range s.denied {
		cp := *e
		result = append(result, &cp)
	}

	return page(result, opts.Offset, opts.Limit), nil
}

// ==================== Fee policy ====================

func (s *Store) GetPolicy(_ context.Context) (*fee.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(); err != nil {
		return nil, err
	}
	if s.policy == nil {
		return nil, coinage.ErrNotFound
	}

	cp := *s.policy
	return &cp, nil
}

func (s *Store) PutPolicy(_ context.Context, p *fee.Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}

	cp := *p
	s.policy = &cp
	return nil
}

// ==================== Event journal ====================

func (s *Store) AppendEvents(_ context.Context, records []*event.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}

	for _, r := range records {
		cp := *r
		s.events = append(s.events, &cp)
	}
	return nil
}

func (s *Store) ListEvents(_ context.Context, opts event.QueryOpts) ([]*event.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(); err != nil {
		return nil, err
	}

	result := make([]*event.Record, 0, len(s.events))
	for _, r := range s.events {
		if opts.Kind != "" && r.Kind != opts.Kind {
			continue
		}
		if !opts.Holder.IsNil() && !r.From.Matches(opts.Holder) && !r.To.Matches(opts.Holder) {
			continue
		}
		cp := *r
		result = append(result, &cp)
	}

	return page(result, opts.Offset, opts.Limit), nil
}

// ==================== Core ====================

func (s *Store) Migrate(_ context.Context) error { return nil }

func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready()
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// ready must be called with at least a read lock held.
func (s *Store) ready() error {
	if s.closed {
		return coinage.ErrStoreClosed
	}
	return nil
}

// page applies offset/limit slicing to a result set.
func page[T any](result []T, offset, limit int) []T {
	start := offset
	if start > len(result) {
		start = len(result)
	}
	end := start + limit
	if limit == 0 || end > len(result) {
		end = len(result)
	}
	return result[start:end]
}
