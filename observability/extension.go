// Package observability provides a metrics extension for Coinage that
// records settlement and administration event counts via a MetricFactory.
package observability

import (
	"context"

	"github.com/xraph/coinage/account"
	"github.com/xraph/coinage/event"
	"github.com/xraph/coinage/fee"
	"github.com/xraph/coinage/id"
	"github.com/xraph/coinage/plugin"
	"github.com/xraph/coinage/types"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin             = (*MetricsExtension)(nil)
	_ plugin.OnInit             = (*MetricsExtension)(nil)
	_ plugin.OnInitialized      = (*MetricsExtension)(nil)
	_ plugin.OnTransferred      = (*MetricsExtension)(nil)
	_ plugin.OnFeeCollected     = (*MetricsExtension)(nil)
	_ plugin.OnTransferRejected = (*MetricsExtension)(nil)
	_ plugin.OnMinted           = (*MetricsExtension)(nil)
	_ plugin.OnBurned           = (*MetricsExtension)(nil)
	_ plugin.OnDenyListAdded    = (*MetricsExtension)(nil)
	_ plugin.OnDenyListRemoved  = (*MetricsExtension)(nil)
	_ plugin.OnPolicyUpdated    = (*MetricsExtension)(nil)
	_ plugin.OnAdminTransferred = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide settlement metrics.
// Register it as a Coinage plugin to automatically track ledger activity.
type MetricsExtension struct {
	factory MetricFactory

	// Settlement metrics
	TransfersSettled  Counter
	TransfersRejected Counter
	TransferAmount    Histogram
	FeesCollected     Counter
	FeeAmount         Histogram

	// Supply metrics
	SupplyMinted Counter
	SupplyBurned Counter
	MintAmount   Histogram
	BurnAmount   Histogram

	// Administration metrics
	DenyListAdditions Counter
	DenyListRemovals  Counter
	PolicyUpdates     Counter
	AdminTransfers    Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Settlement metrics
		TransfersSettled:  factory.Counter("coinage.transfer.settled"),
		TransfersRejected: factory.Counter("coinage.transfer.rejected"),
		TransferAmount:    factory.Histogram("coinage.transfer.amount"),
		FeesCollected:     factory.Counter("coinage.fee.collected"),
		FeeAmount:         factory.Histogram("coinage.fee.amount"),

		// Supply metrics
		SupplyMinted: factory.Counter("coinage.supply.minted"),
		SupplyBurned: factory.Counter("coinage.supply.burned"),
		MintAmount:   factory.Histogram("coinage.mint.amount"),
		BurnAmount:   factory.Histogram("coinage.burn.amount"),

		// Administration metrics
		DenyListAdditions: factory.Counter("coinage.denylist.added"),
		DenyListRemovals:  factory.Counter("coinage.denylist.removed"),
		PolicyUpdates:     factory.Counter("coinage.policy.updated"),
		AdminTransfers:    factory.Counter("coinage.admin.transferred"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Supply lifecycle hooks
// ──────────────────────────────────────────────────

// OnInitialized implements plugin.OnInitialized.
func (m *MetricsExtension) OnInitialized(_ context.Context, rec *event.Record) error {
	m.SupplyMinted.Inc()
	m.MintAmount.Observe(float64(rec.Amount))
	return nil
}

// OnMinted implements plugin.OnMinted.
func (m *MetricsExtension) OnMinted(_ context.Context, rec *event.Record) error {
	m.SupplyMinted.Inc()
	m.MintAmount.Observe(float64(rec.Amount))
	return nil
}

// OnBurned implements plugin.OnBurned.
func (m *MetricsExtension) OnBurned(_ context.Context, rec *event.Record) error {
	m.SupplyBurned.Inc()
	m.BurnAmount.Observe(float64(rec.Amount))
	return nil
}

// ──────────────────────────────────────────────────
// Settlement hooks
// ──────────────────────────────────────────────────

// OnTransferred implements plugin.OnTransferred.
func (m *MetricsExtension) OnTransferred(_ context.Context, rec *event.Record) error {
	m.TransfersSettled.Inc()
	m.TransferAmount.Observe(float64(rec.Amount))
	return nil
}

// OnFeeCollected implements plugin.OnFeeCollected.
func (m *MetricsExtension) OnFeeCollected(_ context.Context, rec *event.Record) error {
	m.FeesCollected.Inc()
	m.FeeAmount.Observe(float64(rec.Amount))
	return nil
}

// OnTransferRejected implements plugin.OnTransferRejected.
func (m *MetricsExtension) OnTransferRejected(_ context.Context, _, _ account.Party, _ types.Amount, _ error) error {
	m.TransfersRejected.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Administration hooks
// ──────────────────────────────────────────────────

// OnDenyListAdded implements plugin.OnDenyListAdded.
func (m *MetricsExtension) OnDenyListAdded(_ context.Context, _ id.AccountID, _ string) error {
	m.DenyListAdditions.Inc()
	return nil
}

// OnDenyListRemoved implements plugin.OnDenyListRemoved.
func (m *MetricsExtension) OnDenyListRemoved(_ context.Context, _ id.AccountID) error {
	m.DenyListRemovals.Inc()
	return nil
}

// OnPolicyUpdated implements plugin.OnPolicyUpdated.
func (m *MetricsExtension) OnPolicyUpdated(_ context.Context, _, _ *fee.Policy) error {
	m.PolicyUpdates.Inc()
	return nil
}

// OnAdminTransferred implements plugin.OnAdminTransferred.
func (m *MetricsExtension) OnAdminTransferred(_ context.Context, _, _ id.AccountID) error {
	m.AdminTransfers.Inc()
	return nil
}
