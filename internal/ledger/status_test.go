package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    AvailabilityStatus
		to      AvailabilityStatus
		allowed bool
	}{
		{"free to reserved", StatusFree, StatusReserved, true},
		{"free to booked skips reservation", StatusFree, StatusBooked, false},
		{"free to free", StatusFree, StatusFree, false},
		{"reserved to booked", StatusReserved, StatusBooked, true},
		{"reserved back to free", StatusReserved, StatusFree, true},
		{"reserved to reserved", StatusReserved, StatusReserved, false},
		{"booked to free on refund", StatusBooked, StatusFree, true},
		{"booked to reserved", StatusBooked, StatusReserved, false},
		{"booked to booked", StatusBooked, StatusBooked, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2026, 1, 15, 19, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name      string
		status    AvailabilityStatus
		expiresAt *time.Time
		want      AvailabilityStatus
	}{
		{"free stays free", StatusFree, nil, StatusFree},
		{"live reservation holds", StatusReserved, &future, StatusReserved},
		{"lapsed reservation counts as free", StatusReserved, &past, StatusFree},
		{"reservation expiring this instant counts as free", StatusReserved, &now, StatusFree},
		{"reservation without deadline holds", StatusReserved, nil, StatusReserved},
		{"booked ignores expiry", StatusBooked, &past, StatusBooked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sa := SeatAvailability{Status: tt.status, ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, sa.EffectiveStatus(now))
		})
	}
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusFree.IsValid())
	assert.True(t, StatusReserved.IsValid())
	assert.True(t, StatusBooked.IsValid())
	assert.False(t, AvailabilityStatus("HELD").IsValid())
}
