package audithook

// Action constants for audit events.
const (
	// Settlement actions
	ActionLedgerInitialized = "ledger.initialized"
	ActionTransferSettled   = "transfer.settled"
	ActionTransferRejected  = "transfer.rejected"
	ActionFeeCollected      = "fee.collected"
	ActionSupplyMinted      = "supply.minted"
	ActionSupplyBurned      = "supply.burned"

	// Deny-list actions
	ActionDenyListAdded   = "denylist.added"
	ActionDenyListRemoved = "denylist.removed"

	// Policy actions
	ActionPolicyUpdated    = "policy.updated"
	ActionAdminTransferred = "admin.transferred"
)

// Resource constants for audit events.
const (
	ResourceLedger   = "ledger"
	ResourceTransfer = "transfer"
	ResourceSupply   = "supply"
	ResourceDenyList = "denylist"
	ResourcePolicy   = "policy"
	ResourceAdmin    = "admin"
)

// Category constants for audit events.
const (
	CategorySettlement = "settlement"
	CategorySupply     = "supply"
	CategoryCompliance = "compliance"
	CategoryGovernance = "governance"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
