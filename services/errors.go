// services/errors.go
package services

import "errors"

// Failure kinds surfaced by the services. All terminal from the system's
// perspective; the caller may retry after correcting the condition.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientFunds = errors.New("not enough fishes")
	ErrMaxLevelReached   = errors.New("max level reached")
	ErrPurchaseConflict  = errors.New("concurrent purchase conflict")
	ErrTokenInvalid      = errors.New("invalid or expired token")
)
