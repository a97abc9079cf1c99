package booking

import (
	"strings"

	"github.com/google/uuid"
)

// newTicketSerial generates the printable ticket code. Uniqueness is
// backed by the unique index on tickets.serial.
func newTicketSerial() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "TKT-" + raw[:8] + "-" + raw[8:16]
}
