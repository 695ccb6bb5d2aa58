package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	// ErrNotFound marks absence of a row or directory entry. For store reads
	// it is a normal outcome, not a provider failure.
	ErrNotFound = errors.New("not found")
	// ErrDelivery marks a mail transport failure. A code persisted before a
	// failed delivery is deliberately left in place.
	ErrDelivery = errors.New("delivery failed")
)
