package coinage

import "errors"

// Sentinel errors for common failure scenarios. Every error is terminal
// for the operation that raised it: state is never partially mutated.
var (
	// General errors
	ErrNotFound           = errors.New("coinage: not found")
	ErrInvalidInput       = errors.New("coinage: invalid input")
	ErrNotInitialized     = errors.New("coinage: ledger not initialized")
	ErrAlreadyInitialized = errors.New("coinage: ledger already initialized")

	// Authorization errors
	ErrNotAuthorized   = errors.New("coinage: caller is not the administrator")
	ErrInvalidIdentity = errors.New("coinage: null identity not allowed")

	// Deny-list errors
	ErrAlreadyDenied   = errors.New("coinage: holder already on deny-list")
	ErrNotDenied       = errors.New("coinage: holder not on deny-list")
	ErrSenderDenied    = errors.New("coinage: sender is on deny-list")
	ErrRecipientDenied = errors.New("coinage: recipient is on deny-list")

	// Settlement errors
	ErrInsufficientBalance = errors.New("coinage: insufficient balance")
	ErrAmountOverflow      = errors.New("coinage: balance overflow")

	// Supply errors
	ErrCeilingExceeded = errors.New("coinage: supply ceiling exceeded")

	// Fee errors
	ErrRateTooHigh = errors.New("coinage: fee rate above maximum")

	// Store errors
	ErrStoreNotReady   = errors.New("coinage: store not ready")
	ErrStoreClosed     = errors.New("coinage: store is closed")
	ErrMigrationFailed = errors.New("coinage: migration failed")
)

// IsNotFound returns true if the error reports a missing entity or an
// uninitialized ledger.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrNotInitialized)
}

// IsDenyListViolation returns true if the error was caused by deny-list
// gating or a deny-list state conflict.
func IsDenyListViolation(err error) bool {
	return errors.Is(err, ErrSenderDenied) ||
		errors.Is(err, ErrRecipientDenied) ||
		errors.Is(err, ErrAlreadyDenied) ||
		errors.Is(err, ErrNotDenied)
}

// IsRejectedSettlement returns true for errors that reject a transfer,
// mint or burn without mutating any state.
func IsRejectedSettlement(err error) bool {
	return errors.Is(err, ErrSenderDenied) ||
		errors.Is(err, ErrRecipientDenied) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrAmountOverflow) ||
		errors.Is(err, ErrCeilingExceeded)
}

// IsRetryable returns true if the error is temporary and the operation
// can be retried by the host.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreNotReady)
}
