package ledger

import "fmt"

// ValidationError reports malformed or incomplete input. It is always
// returned before any external call or write happens.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string { return e.Reason }

// NotFoundError reports a missing referenced record.
type NotFoundError struct {
	Kind string // "account", "beneficiary" or "donation"
}

func (e NotFoundError) Error() string { return e.Kind + " not found" }

// InsufficientFundsError rejects an allocation that would exceed the
// available balance. Available carries the figure the caller can retry with.
type InsufficientFundsError struct {
	Available int64
}

func (e InsufficientFundsError) Error() string {
	return fmt.Sprintf("Insufficient funds. Available: %d", e.Available)
}

// PaymentDeclinedError reports that the gateway refused the payment. The
// donation row has still been written, with status failed.
type PaymentDeclinedError struct {
	Message string
}

func (e PaymentDeclinedError) Error() string { return e.Message }

// StorageError wraps a failure of the underlying store. The unit of work it
// occurred in has been rolled back; nothing is retried here.
type StorageError struct {
	Err error
}

func (e StorageError) Error() string { return "storage unavailable: " + e.Err.Error() }

func (e StorageError) Unwrap() error { return e.Err }
