package booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrInvalidState     = errors.New("booking is not in a valid state for this operation")
	ErrNoSeats          = errors.New("no seats requested")
	ErrTooManySeats     = errors.New("too many seats requested")
	ErrUnknownSeats     = errors.New("one or more seats do not exist for this event")
	ErrEventNotBookable = errors.New("event is not open for booking")
	ErrNotOwner         = errors.New("booking belongs to another customer")
	ErrLockTimeout      = errors.New("could not acquire seat locks in time")
)

// SeatUnavailableError reports which seats blocked an all-or-nothing
// reservation. Callers surface the seat list so the client can refresh
// its seat map instead of retrying blindly.
type SeatUnavailableError struct {
	SeatIDs []uuid.UUID
}

func (e *SeatUnavailableError) Error() string {
	ids := make([]string, 0, len(e.SeatIDs))
	for _, id := range e.SeatIDs {
		ids = append(ids, id.String())
	}
	return fmt.Sprintf("seats unavailable: %s", strings.Join(ids, ", "))
}

// SeatIDStrings returns the blocked seat IDs as strings for responses.
func (e *SeatUnavailableError) SeatIDStrings() []string {
	ids := make([]string, 0, len(e.SeatIDs))
	for _, id := range e.SeatIDs {
		ids = append(ids, id.String())
	}
	return ids
}
