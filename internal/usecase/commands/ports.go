package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateBookingParams struct {
	Items     []BookingItemParams
	StartDate time.Time
	EndDate   time.Time
	Note      *string
}

type BookingItemParams struct {
	ItemID   uuid.UUID
	Quantity int
}

// Shortage names one item the requested window cannot satisfy.
type Shortage struct {
	ItemID    uuid.UUID `json:"item_id"`
	ItemName  string    `json:"item_name"`
	Requested int       `json:"requested"`
	Available int       `json:"available"`
}

// ShortageError carries the full conflict set of a rejected admission, so a
// caller sees every offending item in one response instead of retrying
// item by item.
type ShortageError struct {
	Shortages []Shortage
}

func (e *ShortageError) Error() string {
	names := make([]string, len(e.Shortages))
	for i, s := range e.Shortages {
		names[i] = fmt.Sprintf("%s (requested %d, available %d)", s.ItemName, s.Requested, s.Available)
	}
	return "insufficient availability: " + strings.Join(names, ", ")
}
