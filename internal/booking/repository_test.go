package booking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"stadly/internal/ledger"
)

func TestVerifyHeldRows(t *testing.T) {
	bookingID := uuid.New()
	otherBooking := uuid.New()

	held := func(owner uuid.UUID, status ledger.AvailabilityStatus) ledger.SeatAvailability {
		return ledger.SeatAvailability{SeatID: uuid.New(), Status: status, BookingID: &owner}
	}

	tests := []struct {
		name    string
		rows    []ledger.SeatAvailability
		want    int
		wantErr error
	}{
		{
			name: "all rows still held",
			rows: []ledger.SeatAvailability{
				held(bookingID, ledger.StatusReserved),
				held(bookingID, ledger.StatusReserved),
			},
			want: 2,
		},
		{
			name: "seats reclaimed by another booking",
			rows: []ledger.SeatAvailability{
				held(bookingID, ledger.StatusReserved),
			},
			want:    2,
			wantErr: ErrInvalidState,
		},
		{
			name: "row rewritten to another holder",
			rows: []ledger.SeatAvailability{
				held(bookingID, ledger.StatusReserved),
				held(otherBooking, ledger.StatusReserved),
			},
			want:    2,
			wantErr: ErrInvalidState,
		},
		{
			name: "row no longer reserved",
			rows: []ledger.SeatAvailability{
				held(bookingID, ledger.StatusFree),
			},
			want:    1,
			wantErr: ErrInvalidState,
		},
		{
			name: "row with no holder",
			rows: []ledger.SeatAvailability{
				{SeatID: uuid.New(), Status: ledger.StatusReserved},
			},
			want:    1,
			wantErr: ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := verifyHeldRows(tt.rows, bookingID, tt.want)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReleaseTransition(t *testing.T) {
	tests := []struct {
		name    string
		current BookingStatus
		to      BookingStatus
		apply   bool
		wantErr error
	}{
		{"pending cancels", BookingStatusPending, BookingStatusCancelled, true, nil},
		{"pending fails", BookingStatusPending, BookingStatusFailed, true, nil},
		{"repeat cancel is a no-op", BookingStatusCancelled, BookingStatusCancelled, false, nil},
		{"cancel after sweep marked it failed", BookingStatusFailed, BookingStatusCancelled, false, nil},
		{"sweep after customer cancelled", BookingStatusCancelled, BookingStatusFailed, false, nil},
		{"confirmed cannot release", BookingStatusConfirmed, BookingStatusCancelled, false, ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apply, err := releaseTransition(tt.current, tt.to)
			assert.Equal(t, tt.apply, apply)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
