package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/xraph/coinage/account"
	"github.com/xraph/coinage/event"
	"github.com/xraph/coinage/fee"
	"github.com/xraph/coinage/id"
	"github.com/xraph/coinage/types"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit             []OnInit
	onShutdown         []OnShutdown
	onInitialized      []OnInitialized
	onMinted           []OnMinted
	onBurned           []OnBurned
	onTransferred      []OnTransferred
	onFeeCollected     []OnFeeCollected
	onTransferRejected []OnTransferRejected
	onDenyListAdded    []OnDenyListAdded
	onDenyListRemoved  []OnDenyListRemoved
	onPolicyUpdated    []OnPolicyUpdated
	onAdminTransferred []OnAdminTransferred
	feeStrategies      map[string]FeeStrategy
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger:        slog.Default(),
		feeStrategies: make(map[string]FeeStrategy),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnInitialized); ok {
		r.onInitialized = append(r.onInitialized, v)
	}
	if v, ok := p.(OnMinted); ok {
		r.onMinted = append(r.onMinted, v)
	}
	if v, ok := p.(OnBurned); ok {
		r.onBurned = append(r.onBurned, v)
	}
	if v, ok := p.(OnTransferred); ok {
		r.onTransferred = append(r.onTransferred, v)
	}
	if v, ok := p.(OnFeeCollected); ok {
		r.onFeeCollected = append(r.onFeeCollected, v)
	}
	if v, ok := p.(OnTransferRejected); ok {
		r.onTransferRejected = append(r.onTransferRejected, v)
	}
	if v, ok := p.(OnDenyListAdded); ok {
		r.onDenyListAdded = append(r.onDenyListAdded, v)
	}
	if v, ok := p.(OnDenyListRemoved); ok {
		r.onDenyListRemoved = append(r.onDenyListRemoved, v)
	}
	if v, ok := p.(OnPolicyUpdated); ok {
		r.onPolicyUpdated = append(r.onPolicyUpdated, v)
	}
	if v, ok := p.(OnAdminTransferred); ok {
		r.onAdminTransferred = append(r.onAdminTransferred, v)
	}
	if v, ok := p.(FeeStrategy); ok {
		r.feeStrategies[v.StrategyName()] = v
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	// Check each interface
	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	// List all interfaces to check
	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnInitialized)(nil)).Elem(), "OnInitialized")
	checkInterface(reflect.TypeOf((*OnMinted)(nil)).Elem(), "OnMinted")
	checkInterface(reflect.TypeOf((*OnBurned)(nil)).Elem(), "OnBurned")
	checkInterface(reflect.TypeOf((*OnTransferred)(nil)).Elem(), "OnTransferred")
	checkInterface(reflect.TypeOf((*OnFeeCollected)(nil)).Elem(), "OnFeeCollected")
	checkInterface(reflect.TypeOf((*OnTransferRejected)(nil)).Elem(), "OnTransferRejected")
	checkInterface(reflect.TypeOf((*OnDenyListAdded)(nil)).Elem(), "OnDenyListAdded")
	checkInterface(reflect.TypeOf((*OnDenyListRemoved)(nil)).Elem(), "OnDenyListRemoved")
	checkInterface(reflect.TypeOf((*OnPolicyUpdated)(nil)).Elem(), "OnPolicyUpdated")
	checkInterface(reflect.TypeOf((*OnAdminTransferred)(nil)).Elem(), "OnAdminTransferred")
	checkInterface(reflect.TypeOf((*FeeStrategy)(nil)).Elem(), "FeeStrategy")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// GetFeeStrategy returns a fee strategy by name.
func (r *Registry) GetFeeStrategy(name string) FeeStrategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.feeStrategies[name]
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, ledger interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, ledger)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitInitialized emits the one-time genesis event.
func (r *Registry) EmitInitialized(ctx context.Context, rec *event.Record) {
	r.mu.RLock()
	plugins := r.onInitialized
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInitialized(ctx, rec)
		}); err != nil {
			r.logger.Warn("plugin OnInitialized failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitMinted emits a mint event.
func (r *Registry) EmitMinted(ctx context.Context, rec *event.Record) {
	r.mu.RLock()
	plugins := r.onMinted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnMinted(ctx, rec)
		}); err != nil {
			r.logger.Warn("plugin OnMinted failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitBurned emits a burn event.
func (r *Registry) EmitBurned(ctx context.Context, rec *event.Record) {
	r.mu.RLock()
	plugins := r.onBurned
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnBurned(ctx, rec)
		}); err != nil {
			r.logger.Warn("plugin OnBurned failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitTransferred emits a settled transfer event.
func (r *Registry) EmitTransferred(ctx context.Context, rec *event.Record) {
	r.mu.RLock()
	plugins := r.onTransferred
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnTransferred(ctx, rec)
		}); err != nil {
			r.logger.Warn("plugin OnTransferred failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitFeeCollected emits a fee collection event.
func (r *Registry) EmitFeeCollected(ctx context.Context, rec *event.Record) {
	r.mu.RLock()
	plugins := r.onFeeCollected
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnFeeCollected(ctx, rec)
		}); err != nil {
			r.logger.Warn("plugin OnFeeCollected failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitTransferRejected emits a rejected settlement event.
func (r *Registry) EmitTransferRejected(ctx context.Context, from, to account.Party, amount types.Amount, cause error) {
	r.mu.RLock()
	plugins := r.onTransferRejected
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnTransferRejected(ctx, from, to, amount, cause)
		}); err != nil {
			r.logger.Warn("plugin OnTransferRejected failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitDenyListAdded emits a deny-list addition event.
func (r *Registry) EmitDenyListAdded(ctx context.Context, holder id.AccountID, reason string) {
	r.mu.RLock()
	plugins := r.onDenyListAdded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnDenyListAdded(ctx, holder, reason)
		}); err != nil {
			r.logger.Warn("plugin OnDenyListAdded failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitDenyListRemoved emits a deny-list removal event.
func (r *Registry) EmitDenyListRemoved(ctx context.Context, holder id.AccountID) {
	r.mu.RLock()
	plugins := r.onDenyListRemoved
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnDenyListRemoved(ctx, holder)
		}); err != nil {
			r.logger.Warn("plugin OnDenyListRemoved failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPolicyUpdated emits a fee policy update event.
func (r *Registry) EmitPolicyUpdated(ctx context.Context, old, updated *fee.Policy) {
	r.mu.RLock()
	plugins := r.onPolicyUpdated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPolicyUpdated(ctx, old, updated)
		}); err != nil {
			r.logger.Warn("plugin OnPolicyUpdated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitAdminTransferred emits an administrator change event.
func (r *Registry) EmitAdminTransferred(ctx context.Context, old, updated id.AccountID) {
	r.mu.RLock()
	plugins := r.onAdminTransferred
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnAdminTransferred(ctx, old, updated)
		}); err != nil {
			r.logger.Warn("plugin OnAdminTransferred failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the settlement pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
