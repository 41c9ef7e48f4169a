package teller

import "errors"

// Business rule failures. They never leave an account or user partially updated.
var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountNotFound   = errors.New("account not found")
	ErrSameAccount       = errors.New("source and destination accounts are the same")
	ErrDuplicateLogin    = errors.New("login already exists")
	ErrUnknownLogin      = errors.New("unknown login")
	ErrEmptyField        = errors.New("field must not be blank")
)

// Persistence failures.
var (
	// ErrSave is returned when a mutation succeeded in memory but the
	// snapshot could not be written. The in-memory change is kept.
	ErrSave = errors.New("snapshot not saved")
	// ErrNoSnapshot means the store holds no prior state (first run).
	ErrNoSnapshot = errors.New("no snapshot")
	// ErrCorruptSnapshot means a snapshot exists but cannot be trusted.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)
