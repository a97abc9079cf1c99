package ledger

import "time"

// AvailabilityStatus tracks a seat's state for one event
type AvailabilityStatus string

const (
	StatusFree     AvailabilityStatus = "FREE"
	StatusReserved AvailabilityStatus = "RESERVED"
	StatusBooked   AvailabilityStatus = "BOOKED"
)

func (s AvailabilityStatus) String() string {
	return string(s)
}

func (s AvailabilityStatus) IsValid() bool {
	switch s {
	case StatusFree, StatusReserved, StatusBooked:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to target is a legal
// state change. FREE -> RESERVED -> BOOKED going forward, and both
// RESERVED and BOOKED can fall back to FREE (expiry, release, refund).
func (s AvailabilityStatus) CanTransition(target AvailabilityStatus) bool {
	switch s {
	case StatusFree:
		return target == StatusReserved
	case StatusReserved:
		return target == StatusBooked || target == StatusFree
	case StatusBooked:
		return target == StatusFree
	}
	return false
}

// Effective returns the status a reader should act on at the given
// instant. A RESERVED row whose hold has lapsed counts as FREE even
// before the sweep reclaims it.
func (s AvailabilityStatus) Effective(expiresAt *time.Time, now time.Time) AvailabilityStatus {
	if s == StatusReserved && expiresAt != nil && !expiresAt.After(now) {
		return StatusFree
	}
	return s
}
