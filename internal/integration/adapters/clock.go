// Package adapters provides implementations of application adapter interfaces.
package adapters

import (
	"time"

	"github.com/wallet-ledger/backend/internal/application/adapter"
)

// systemClock implements adapter.Clock using the real time.
type systemClock struct{}

// NewSystemClock creates a clock backed by time.Now.
func NewSystemClock() adapter.Clock {
	return systemClock{}
}

// Now returns the current UTC time.
func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
