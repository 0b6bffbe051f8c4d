// Package audithook bridges Coinage lifecycle events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not import
// Chronicle directly. Callers inject a RecorderFunc adapter that bridges
// to Chronicle at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/coinage/account"
	"github.com/xraph/coinage/event"
	"github.com/xraph/coinage/fee"
	"github.com/xraph/coinage/id"
	"github.com/xraph/coinage/plugin"
	"github.com/xraph/coinage/types"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin             = (*Extension)(nil)
	_ plugin.OnInitialized      = (*Extension)(nil)
	_ plugin.OnTransferred      = (*Extension)(nil)
	_ plugin.OnTransferRejected = (*Extension)(nil)
	_ plugin.OnFeeCollected     = (*Extension)(nil)
	_ plugin.OnMinted           = (*Extension)(nil)
	_ plugin.OnBurned           = (*Extension)(nil)
	_ plugin.OnDenyListAdded    = (*Extension)(nil)
	_ plugin.OnDenyListRemoved  = (*Extension)(nil)
	_ plugin.OnPolicyUpdated    = (*Extension)(nil)
	_ plugin.OnAdminTransferred = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// This matches chronicle.Emitter but is defined locally so that the
// audit_hook package does not import Chronicle directly — callers inject
// the concrete *chronicle.Chronicle at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
// It mirrors chronicle/audit.Event but avoids a module dependency.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges Coinage lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Supply lifecycle hooks
// ──────────────────────────────────────────────────

// OnInitialized implements plugin.OnInitialized.
func (e *Extension) OnInitialized(ctx context.Context, rec *event.Record) error {
	return e.record(ctx, ActionLedgerInitialized, SeverityInfo, OutcomeSuccess,
		ResourceLedger, rec.ID.String(), CategorySupply, nil,
		"recipient", rec.To.String(),
		"initial_supply", rec.Amount.String(),
	)
}

// OnMinted implements plugin.OnMinted.
func (e *Extension) OnMinted(ctx context.Context, rec *event.Record) error {
	return e.record(ctx, ActionSupplyMinted, SeverityInfo, OutcomeSuccess,
		ResourceSupply, rec.ID.String(), CategorySupply, nil,
		"to", rec.To.String(),
		"amount", rec.Amount.String(),
	)
}

// OnBurned implements plugin.OnBurned.
func (e *Extension) OnBurned(ctx context.Context, rec *event.Record) error {
	return e.record(ctx, ActionSupplyBurned, SeverityInfo, OutcomeSuccess,
		ResourceSupply, rec.ID.String(), CategorySupply, nil,
		"holder", rec.From.String(),
		"amount", rec.Amount.String(),
	)
}

// ──────────────────────────────────────────────────
// Settlement hooks
// ──────────────────────────────────────────────────

// OnTransferred implements plugin.OnTransferred.
func (e *Extension) OnTransferred(ctx context.Context, rec *event.Record) error {
	return e.record(ctx, ActionTransferSettled, SeverityInfo, OutcomeSuccess,
		ResourceTransfer, rec.ID.String(), CategorySettlement, nil,
		"from", rec.From.String(),
		"to", rec.To.String(),
		"amount", rec.Amount.String(),
	)
}

// OnFeeCollected implements plugin.OnFeeCollected.
func (e *Extension) OnFeeCollected(ctx context.Context, rec *event.Record) error {
	return e.record(ctx, ActionFeeCollected, SeverityInfo, OutcomeSuccess,
		ResourceTransfer, rec.ID.String(), CategorySettlement, nil,
		"from", rec.From.String(),
		"collector", rec.To.String(),
		"fee", rec.Amount.String(),
	)
}

// OnTransferRejected implements plugin.OnTransferRejected.
func (e *Extension) OnTransferRejected(ctx context.Context, from, to account.Party, amount types.Amount, cause error) error {
	return e.record(ctx, ActionTransferRejected, SeverityWarning, OutcomeFailure,
		ResourceTransfer, "", CategorySettlement, cause,
		"from", from.String(),
		"to", to.String(),
		"amount", amount.String(),
	)
}

// ──────────────────────────────────────────────────
// Administration hooks
// ──────────────────────────────────────────────────

// OnDenyListAdded implements plugin.OnDenyListAdded.
func (e *Extension) OnDenyListAdded(ctx context.Context, holder id.AccountID, reason string) error {
	return e.record(ctx, ActionDenyListAdded, SeverityWarning, OutcomeSuccess,
		ResourceDenyList, holder.String(), CategoryCompliance, nil,
		"holder", holder.String(),
		"reason", reason,
	)
}

// OnDenyListRemoved implements plugin.OnDenyListRemoved.
func (e *Extension) OnDenyListRemoved(ctx context.Context, holder id.AccountID) error {
	return e.record(ctx, ActionDenyListRemoved, SeverityInfo, OutcomeSuccess,
		ResourceDenyList, holder.String(), CategoryCompliance, nil,
		"holder", holder.String(),
	)
}

// OnPolicyUpdated implements plugin.OnPolicyUpdated.
func (e *Extension) OnPolicyUpdated(ctx context.Context, _, updated *fee.Policy) error {
	return e.record(ctx, ActionPolicyUpdated, SeverityInfo, OutcomeSuccess,
		ResourcePolicy, "", CategoryGovernance, nil,
		"rate_bps", uint32(updated.Rate),
		"enabled", updated.Enabled,
		"collector", updated.Collector.String(),
	)
}

// OnAdminTransferred implements plugin.OnAdminTransferred.
func (e *Extension) OnAdminTransferred(ctx context.Context, old, updated id.AccountID) error {
	return e.record(ctx, ActionAdminTransferred, SeverityCritical, OutcomeSuccess,
		ResourceAdmin, updated.String(), CategoryGovernance, nil,
		"old_admin", old.String(),
		"new_admin", updated.String(),
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
