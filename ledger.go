package coinage

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/xraph/coinage/account"
	"github.com/xraph/coinage/asset"
	"github.com/xraph/coinage/denylist"
	"github.com/xraph/coinage/event"
	"github.com/xraph/coinage/fee"
	"github.com/xraph/coinage/id"
	"github.com/xraph/coinage/plugin"
	"github.com/xraph/coinage/store"
	"github.com/xraph/coinage/types"
)

// Ledger is the main settlement engine for a single capped-supply asset.
// All mutating operations are serialized: validation always runs against
// the state the settlement will commit on top of.
type Ledger struct {
	store   store.Store
	plugins *plugin.Registry
	logger  *slog.Logger

	// now is the engine clock. Tests inject a fixed clock so replayed
	// operations produce identical event records.
	now func() time.Time

	// feeStrategy names a registered plugin.FeeStrategy that replaces
	// the built-in basis-point computation. Empty means built-in.
	feeStrategy string

	mu sync.Mutex
}

// New creates a new Ledger instance on top of the given store.
func New(s store.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:   s,
		plugins: plugin.NewRegistry(),
		logger:  slog.Default(),
		now:     func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Option configures a Ledger instance.
type Option func(*Ledger)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
		l.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(l *Ledger) {
		_ = l.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithClock overrides the engine clock.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithFeeStrategy selects a registered fee strategy plugin by name.
func WithFeeStrategy(name string) Option {
	return func(l *Ledger) {
		l.feeStrategy = name
	}
}

// Start migrates the store and initializes plugins.
func (l *Ledger) Start(ctx context.Context) error {
	if err := l.store.Migrate(ctx); err != nil {
		return err
	}

	l.plugins.EmitInit(ctx, l)

	l.logger.Info("coinage started",
		"plugins", l.plugins.Count(),
		"fee_strategy", l.feeStrategy,
	)

	return nil
}

// Stop shuts down the Ledger.
func (l *Ledger) Stop() error {
	ctx := context.Background()
	l.plugins.EmitShutdown(ctx)

	return l.store.Close()
}

// Plugins exposes the plugin registry.
func (l *Ledger) Plugins() *plugin.Registry {
	return l.plugins
}

// ──────────────────────────────────────────────────
// Initialization
// ──────────────────────────────────────────────────

// Genesis describes the one-time asset creation.
type Genesis struct {
	Name          string
	Symbol        string
	Decimals      int
	Ceiling       types.Amount
	InitialSupply types.Amount
	Recipient     id.AccountID
	Admin         id.AccountID
}

// Receipt summarizes a settled operation: its gross amount, the fee
// split off (zero when no fee applied), the net amount credited, and
// the journal records the operation appended.
type Receipt struct {
	Gross  types.Amount
	Fee    types.Amount
	Net    types.Amount
	Events []*event.Record
}

// Initialize creates the asset singleton and issues the initial supply
// to the genesis recipient. It can succeed exactly once; any further
// call fails with ErrAlreadyInitialized regardless of arguments.
func (l *Ledger) Initialize(ctx context.Context, g Genesis) (*Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if g.Admin.IsNil() {
		return nil, ErrInvalidIdentity
	}
	if g.InitialSupply > 0 && g.Recipient.IsNil() {
		return nil, ErrInvalidIdentity
	}
	if g.InitialSupply > g.Ceiling {
		return nil, ErrCeilingExceeded
	}

	if _, err := l.store.GetAsset(ctx); err == nil {
		return nil, ErrAlreadyInitialized
	} else if !IsNotFound(err) {
		return nil, err
	}

	now := l.now()
	a := &asset.Asset{
		Entity:   types.EntityAt(now),
		ID:       id.NewAssetID(),
		Name:     g.Name,
		Symbol:   g.Symbol,
		Decimals: g.Decimals,
		Ceiling:  g.Ceiling,
		Issued:   g.InitialSupply,
		Admin:    g.Admin,
	}
	if err := l.store.PutAsset(ctx, a); err != nil {
		return nil, err
	}

	// The fee policy starts neutral: disabled, zero rate, no collector.
	policy := &fee.Policy{Entity: types.EntityAt(now)}
	if err := l.store.PutPolicy(ctx, policy); err != nil {
		return nil, err
	}

	if g.InitialSupply > 0 {
		updates := []account.BalanceUpdate{{Holder: g.Recipient, Amount: g.InitialSupply}}
		if err := l.store.ApplySettlement(ctx, updates); err != nil {
			return nil, err
		}
	}

	recipient := account.None
	if !g.Recipient.IsNil() {
		recipient = account.Holder(g.Recipient)
	}
	rec := l.newRecord(event.KindInitialized, account.MintSource, recipient, g.InitialSupply, map[string]string{
		"name":    g.Name,
		"symbol":  g.Symbol,
		"ceiling": g.Ceiling.String(),
	})
	if err := l.store.AppendEvents(ctx, []*event.Record{rec}); err != nil {
		return nil, err
	}

	l.plugins.EmitInitialized(ctx, rec)
	l.logger.Info("ledger initialized",
		"symbol", g.Symbol,
		"ceiling", g.Ceiling,
		"initial_supply", g.InitialSupply,
	)

	return &Receipt{
		Gross:  g.InitialSupply,
		Net:    g.InitialSupply,
		Events: []*event.Record{rec},
	}, nil
}

// ──────────────────────────────────────────────────
// Settlement
// ──────────────────────────────────────────────────

// Transfer moves amount from one holder to another. When the fee policy
// applies, the deduction is split: the fee settles to the collector and
// the remainder to the recipient, atomically.
func (l *Ledger) Transfer(ctx context.Context, from, to id.AccountID, amount types.Amount) (*Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if from.IsNil() || to.IsNil() {
		return nil, ErrInvalidIdentity
	}
	if _, err := l.store.GetAsset(ctx); err != nil {
		return nil, err
	}

	sender, recipient := account.Holder(from), account.Holder(to)

	if err := l.checkDenied(ctx, from, to); err != nil {
		l.plugins.EmitTransferRejected(ctx, sender, recipient, amount, err)
		return nil, err
	}

	policy, err := l.loadPolicy(ctx)
	if err != nil {
		return nil, err
	}

	var feeAmount types.Amount
	if policy.AppliesTo(from, to) {
		feeAmount = l.computeFee(amount, policy)
	}
	net, _ := amount.Sub(feeAmount) // fee never exceeds amount

	deltas := newDeltaSet()
	if err := deltas.debit(ctx, l.store, from, amount); err != nil {
		l.plugins.EmitTransferRejected(ctx, sender, recipient, amount, err)
		return nil, err
	}
	if err := deltas.credit(ctx, l.store, to, net); err != nil {
		l.plugins.EmitTransferRejected(ctx, sender, recipient, amount, err)
		return nil, err
	}
	if feeAmount > 0 {
		if err := deltas.credit(ctx, l.store, policy.Collector, feeAmount); err != nil {
			l.plugins.EmitTransferRejected(ctx, sender, recipient, amount, err)
			return nil, err
		}
	}

	if err := l.store.ApplySettlement(ctx, deltas.updates()); err != nil {
		return nil, err
	}

	// The fee leg is journaled and announced ahead of the net movement.
	var records []*event.Record
	if feeAmount > 0 {
		records = append(records, l.newRecord(event.KindFeeCollected, sender, account.Holder(policy.Collector), feeAmount, nil))
	}
	transferRec := l.newRecord(event.KindTransfer, sender, recipient, net, nil)
	records = append(records, transferRec)
	if err := l.store.AppendEvents(ctx, records); err != nil {
		return nil, err
	}

	if feeAmount > 0 {
		l.plugins.EmitFeeCollected(ctx, records[0])
	}
	l.plugins.EmitTransferred(ctx, transferRec)

	l.logger.Debug("transfer settled",
		"from", from,
		"to", to,
		"gross", amount,
		"fee", feeAmount,
	)

	return &Receipt{Gross: amount, Fee: feeAmount, Net: net, Events: records}, nil
}

// Mint issues new supply to a holder. Only the administrator may mint,
// and issuance never takes outstanding supply past the ceiling.
func (l *Ledger) Mint(ctx context.Context, caller, to id.AccountID, amount types.Amount) (*Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if to.IsNil() {
		return nil, ErrInvalidIdentity
	}

	a, err := l.requireAdmin(ctx, caller)
	if err != nil {
		return nil, err
	}

	recipient := account.Holder(to)

	if denied, err := l.store.IsDenied(ctx, to); err != nil {
		return nil, err
	} else if denied {
		l.plugins.EmitTransferRejected(ctx, account.MintSource, recipient, amount, ErrRecipientDenied)
		return nil, ErrRecipientDenied
	}

	if !a.CanIssue(amount) {
		l.plugins.EmitTransferRejected(ctx, account.MintSource, recipient, amount, ErrCeilingExceeded)
		return nil, ErrCeilingExceeded
	}

	deltas := newDeltaSet()
	if err := deltas.credit(ctx, l.store, to, amount); err != nil {
		l.plugins.EmitTransferRejected(ctx, account.MintSource, recipient, amount, err)
		return nil, err
	}

	if err := l.store.ApplySettlement(ctx, deltas.updates()); err != nil {
		return nil, err
	}

	a.Issued, _ = a.Issued.Add(amount) // bounded by CanIssue above
	a.TouchAt(l.now())
	if err := l.store.PutAsset(ctx, a); err != nil {
		return nil, err
	}

	rec := l.newRecord(event.KindMint, account.MintSource, recipient, amount, nil)
	if err := l.store.AppendEvents(ctx, []*event.Record{rec}); err != nil {
		return nil, err
	}

	l.plugins.EmitMinted(ctx, rec)
	l.logger.Info("supply minted",
		"to", to,
		"amount", amount,
		"issued", a.Issued,
	)

	return &Receipt{Gross: amount, Net: amount, Events: []*event.Record{rec}}, nil
}

// Burn destroys part of the caller's own balance. Burned units leave
// outstanding supply and free headroom for future minting.
func (l *Ledger) Burn(ctx context.Context, holder id.AccountID, amount types.Amount) (*Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if holder.IsNil() {
		return nil, ErrInvalidIdentity
	}

	a, err := l.store.GetAsset(ctx)
	if err != nil {
		return nil, err
	}

	burner := account.Holder(holder)

	if denied, err := l.store.IsDenied(ctx, holder); err != nil {
		return nil, err
	} else if denied {
		l.plugins.EmitTransferRejected(ctx, burner, account.BurnSink, amount, ErrSenderDenied)
		return nil, ErrSenderDenied
	}

	deltas := newDeltaSet()
	if err := deltas.debit(ctx, l.store, holder, amount); err != nil {
		l.plugins.EmitTransferRejected(ctx, burner, account.BurnSink, amount, err)
		return nil, err
	}

	if err := l.store.ApplySettlement(ctx, deltas.updates()); err != nil {
		return nil, err
	}

	a.Issued, _ = a.Issued.Sub(amount) // balance <= issued, cannot underflow
	a.TouchAt(l.now())
	if err := l.store.PutAsset(ctx, a); err != nil {
		return nil, err
	}

	rec := l.newRecord(event.KindBurn, burner, account.BurnSink, amount, nil)
	if err := l.store.AppendEvents(ctx, []*event.Record{rec}); err != nil {
		return nil, err
	}

	l.plugins.EmitBurned(ctx, rec)
	l.logger.Info("supply burned",
		"holder", holder,
		"amount", amount,
		"issued", a.Issued,
	)

	return &Receipt{Gross: amount, Net: amount, Events: []*event.Record{rec}}, nil
}

// ──────────────────────────────────────────────────
// Deny-list administration
// ──────────────────────────────────────────────────

// AddToDenyList blocks a holder from sending and receiving. The
// holder's existing balance is frozen in place, not seized.
func (l *Ledger) AddToDenyList(ctx context.Context, caller, holder id.AccountID, reason string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if holder.IsNil() {
		return ErrInvalidIdentity
	}
	if _, err := l.requireAdmin(ctx, caller); err != nil {
		return err
	}

	entry := &denylist.Entry{
		Entity: types.EntityAt(l.now()),
		Holder: holder,
		Reason: reason,
	}
	if err := l.store.AddDenied(ctx, entry); err != nil {
		return err
	}

	rec := l.newRecord(event.KindDenyListAdded, account.None, account.Holder(holder), 0, metaReason(reason))
	if err := l.store.AppendEvents(ctx, []*event.Record{rec}); err != nil {
		return err
	}

	l.plugins.EmitDenyListAdded(ctx, holder, reason)
	l.logger.Info("holder denied", "holder", holder, "reason", reason)
	return nil
}

// RemoveFromDenyList unblocks a holder.
func (l *Ledger) RemoveFromDenyList(ctx context.Context, caller, holder id.AccountID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if holder.IsNil() {
		return ErrInvalidIdentity
	}
	if _, err := l.requireAdmin(ctx, caller); err != nil {
		return err
	}

	if err := l.store.RemoveDenied(ctx, holder); err != nil {
		return err
	}

	rec := l.newRecord(event.KindDenyListRemoved, account.None, account.Holder(holder), 0, nil)
	if err := l.store.AppendEvents(ctx, []*event.Record{rec}); err != nil {
		return err
	}

	l.plugins.EmitDenyListRemoved(ctx, holder)
	l.logger.Info("holder undenied", "holder", holder)
	return nil
}

// IsDenied reports whether a holder is currently blocked.
func (l *Ledger) IsDenied(ctx context.Context, holder id.AccountID) (bool, error) {
	return l.store.IsDenied(ctx, holder)
}

// DenyList lists current deny-list entries.
func (l *Ledger) DenyList(ctx context.Context, opts denylist.ListOpts) ([]*denylist.Entry, error) {
	return l.store.ListDenied(ctx, opts)
}

// ──────────────────────────────────────────────────
// Fee policy administration
// ──────────────────────────────────────────────────

// SetFeeRate updates the fee rate in basis points. Rates above
// fee.MaxRateBps are rejected with the policy left untouched.
func (l *Ledger) SetFeeRate(ctx context.Context, caller id.AccountID, rate types.BasisPoints) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.requireAdmin(ctx, caller); err != nil {
		return err
	}
	if rate > fee.MaxRateBps {
		return ErrRateTooHigh
	}

	return l.updatePolicy(ctx, event.KindFeeRateUpdated,
		map[string]string{"rate_bps": strconv.FormatUint(uint64(rate), 10)},
		func(p *fee.Policy) { p.Rate = rate },
	)
}

// SetFeeCollector updates the fee collector account.
func (l *Ledger) SetFeeCollector(ctx context.Context, caller, collector id.AccountID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.requireAdmin(ctx, caller); err != nil {
		return err
	}
	if collector.IsNil() {
		return ErrInvalidIdentity
	}

	return l.updatePolicy(ctx, event.KindFeeCollectorUpdated,
		map[string]string{"collector": collector.String()},
		func(p *fee.Policy) { p.Collector = collector },
	)
}

// SetFeeEnabled toggles fee collection without touching rate or
// collector.
func (l *Ledger) SetFeeEnabled(ctx context.Context, caller id.AccountID, enabled bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.requireAdmin(ctx, caller); err != nil {
		return err
	}

	return l.updatePolicy(ctx, event.KindFeeToggled,
		map[string]string{"enabled": strconv.FormatBool(enabled)},
		func(p *fee.Policy) { p.Enabled = enabled },
	)
}

// ComputeFee previews the fee a holder-to-holder transfer of amount
// would pay under the current policy. It never mutates state.
func (l *Ledger) ComputeFee(ctx context.Context, amount types.Amount) (types.Amount, error) {
	policy, err := l.loadPolicy(ctx)
	if err != nil {
		return 0, err
	}
	if !policy.Active() {
		return 0, nil
	}
	return l.computeFee(amount, policy), nil
}

// FeePolicy returns the current fee policy.
func (l *Ledger) FeePolicy(ctx context.Context) (*fee.Policy, error) {
	return l.loadPolicy(ctx)
}

// ──────────────────────────────────────────────────
// Administrator role
// ──────────────────────────────────────────────────

// TransferAdmin hands the administrator role to a new identity. The
// caller loses all administrative rights the moment this returns.
func (l *Ledger) TransferAdmin(ctx context.Context, caller, newAdmin id.AccountID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if newAdmin.IsNil() {
		return ErrInvalidIdentity
	}

	a, err := l.requireAdmin(ctx, caller)
	if err != nil {
		return err
	}

	old := a.Admin
	a.Admin = newAdmin
	a.TouchAt(l.now())
	if err := l.store.PutAsset(ctx, a); err != nil {
		return err
	}

	rec := l.newRecord(event.KindAdminTransferred, account.Holder(old), account.Holder(newAdmin), 0, nil)
	if err := l.store.AppendEvents(ctx, []*event.Record{rec}); err != nil {
		return err
	}

	l.plugins.EmitAdminTransferred(ctx, old, newAdmin)
	l.logger.Info("admin transferred", "from", old, "to", newAdmin)
	return nil
}

// Admin returns the current administrator identity.
func (l *Ledger) Admin(ctx context.Context) (id.AccountID, error) {
	a, err := l.store.GetAsset(ctx)
	if err != nil {
		return id.Nil, err
	}
	return a.Admin, nil
}

// ──────────────────────────────────────────────────
// Reads
// ──────────────────────────────────────────────────

// BalanceOf returns a holder's balance. Unknown holders have a zero
// balance.
func (l *Ledger) BalanceOf(ctx context.Context, holder id.AccountID) (types.Amount, error) {
	if holder.IsNil() {
		return 0, ErrInvalidIdentity
	}
	return l.store.GetBalance(ctx, holder)
}

// Balances lists holder positions.
func (l *Ledger) Balances(ctx context.Context, opts account.ListOpts) ([]*account.Balance, error) {
	return l.store.ListBalances(ctx, opts)
}

// TotalIssued returns outstanding supply.
func (l *Ledger) TotalIssued(ctx context.Context) (types.Amount, error) {
	a, err := l.store.GetAsset(ctx)
	if err != nil {
		return 0, err
	}
	return a.Issued, nil
}

// RemainingMintable returns the supply headroom left under the ceiling.
func (l *Ledger) RemainingMintable(ctx context.Context) (types.Amount, error) {
	a, err := l.store.GetAsset(ctx)
	if err != nil {
		return 0, err
	}
	return a.Remaining(), nil
}

// Asset returns the asset definition and supply state.
func (l *Ledger) Asset(ctx context.Context) (*asset.Asset, error) {
	return l.store.GetAsset(ctx)
}

// Events queries the append-only journal.
func (l *Ledger) Events(ctx context.Context, opts event.QueryOpts) ([]*event.Record, error) {
	return l.store.ListEvents(ctx, opts)
}

// ──────────────────────────────────────────────────
// Internals
// ──────────────────────────────────────────────────

// requireAdmin loads the asset and verifies the caller holds the
// administrator role.
func (l *Ledger) requireAdmin(ctx context.Context, caller id.AccountID) (*asset.Asset, error) {
	if caller.IsNil() {
		return nil, ErrInvalidIdentity
	}
	a, err := l.store.GetAsset(ctx)
	if err != nil {
		return nil, err
	}
	if !a.Admin.Equal(caller) {
		return nil, ErrNotAuthorized
	}
	return a, nil
}

// checkDenied gates both endpoints of a transfer. The sender is checked
// first so a doubly-denied pair reports the sender.
func (l *Ledger) checkDenied(ctx context.Context, from, to id.AccountID) error {
	if denied, err := l.store.IsDenied(ctx, from); err != nil {
		return err
	} else if denied {
		return ErrSenderDenied
	}
	if denied, err := l.store.IsDenied(ctx, to); err != nil {
		return err
	} else if denied {
		return ErrRecipientDenied
	}
	return nil
}

// loadPolicy returns the stored policy, or a neutral one for stores
// initialized before fee support existed.
func (l *Ledger) loadPolicy(ctx context.Context) (*fee.Policy, error) {
	policy, err := l.store.GetPolicy(ctx)
	if err != nil {
		if IsNotFound(err) {
			return &fee.Policy{}, nil
		}
		return nil, err
	}
	return policy, nil
}

// computeFee applies the configured strategy, falling back to the
// built-in basis-point split. Strategy results are clamped to the
// transfer amount so the split can never go negative.
func (l *Ledger) computeFee(amount types.Amount, policy *fee.Policy) types.Amount {
	if l.feeStrategy != "" {
		if s := l.plugins.GetFeeStrategy(l.feeStrategy); s != nil {
			return s.ComputeFee(amount, policy).Min(amount)
		}
	}
	return policy.Compute(amount)
}

// updatePolicy applies one mutation to the fee policy and journals it.
// Must be called with l.mu held.
func (l *Ledger) updatePolicy(ctx context.Context, kind event.Kind, meta map[string]string, apply func(*fee.Policy)) error {
	policy, err := l.loadPolicy(ctx)
	if err != nil {
		return err
	}

	old := *policy
	apply(policy)
	policy.TouchAt(l.now())
	if err := l.store.PutPolicy(ctx, policy); err != nil {
		return err
	}

	rec := l.newRecord(kind, account.None, account.None, 0, meta)
	if err := l.store.AppendEvents(ctx, []*event.Record{rec}); err != nil {
		return err
	}

	l.plugins.EmitPolicyUpdated(ctx, &old, policy)
	l.logger.Info("fee policy updated", "kind", kind, "rate_bps", policy.Rate, "enabled", policy.Enabled)
	return nil
}

// newRecord stamps a journal record with the engine clock.
func (l *Ledger) newRecord(kind event.Kind, from, to account.Party, amount types.Amount, meta map[string]string) *event.Record {
	return &event.Record{
		ID:     id.NewEventID(),
		Kind:   kind,
		From:   from,
		To:     to,
		Amount: amount,
		At:     l.now(),
		Meta:   meta,
	}
}

func metaReason(reason string) map[string]string {
	if reason == "" {
		return nil
	}
	return map[string]string{"reason": reason}
}

// ──────────────────────────────────────────────────
// Delta aggregation
// ──────────────────────────────────────────────────

// deltaSet accumulates per-holder final balances for one settlement.
// Reading each holder's balance once and layering the legs on top keeps
// multi-leg settlements (principal plus fee, self-transfers) exact.
type deltaSet struct {
	order  []id.AccountID
	finals map[string]types.Amount
}

func newDeltaSet() *deltaSet {
	return &deltaSet{finals: make(map[string]types.Amount)}
}

// load reads the holder's current balance the first time it appears.
func (d *deltaSet) load(ctx context.Context, s store.Store, holder id.AccountID) (types.Amount, error) {
	key := holder.String()
	if final, ok := d.finals[key]; ok {
		return final, nil
	}
	bal, err := s.GetBalance(ctx, holder)
	if err != nil {
		return 0, err
	}
	d.order = append(d.order, holder)
	d.finals[key] = bal
	return bal, nil
}

func (d *deltaSet) debit(ctx context.Context, s store.Store, holder id.AccountID, amount types.Amount) error {
	bal, err := d.load(ctx, s, holder)
	if err != nil {
		return err
	}
	final, ok := bal.Sub(amount)
	if !ok {
		return ErrInsufficientBalance
	}
	d.finals[holder.String()] = final
	return nil
}

func (d *deltaSet) credit(ctx context.Context, s store.Store, holder id.AccountID, amount types.Amount) error {
	bal, err := d.load(ctx, s, holder)
	if err != nil {
		return err
	}
	final, ok := bal.Add(amount)
	if !ok {
		return ErrAmountOverflow
	}
	d.finals[holder.String()] = final
	return nil
}

// updates renders the accumulated finals in first-touch order.
func (d *deltaSet) updates() []account.BalanceUpdate {
	out := make([]account.BalanceUpdate, 0, len(d.order))
	for _, holder := range d.order {
		out = append(out, account.BalanceUpdate{
			Holder: holder,
			Amount: d.finals[holder.String()],
		})
	}
	return out
}
