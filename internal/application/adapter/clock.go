// Package adapter defines interfaces for external dependencies (ports).
package adapter

import "time"

// Clock supplies the current time. Core operations never call time.Now
// directly; injecting the clock keeps date-sensitive logic (lazy snapshots,
// rebuild guard, calibration dating) deterministic under test.
type Clock interface {
	Now() time.Time
}
