package request

import (
	"strings"
	"time"

	"storeroom-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	Items     []BookingItemRequest `json:"items" binding:"required,min=1,dive"`
	StartDate time.Time            `json:"startDate" binding:"required"`
	EndDate   time.Time            `json:"endDate" binding:"required"`
	Notes     *string              `json:"notes,omitempty"`
}

// Quantity is deliberately unbound: the admission engine reports
// non-positive quantities in its documented validation order.
type BookingItemRequest struct {
	ItemID   uuid.UUID `json:"itemId" binding:"required"`
	Quantity int       `json:"quantity"`
}

func (r CreateBookingRequest) ToParams() commands.CreateBookingParams {
	items := make([]commands.BookingItemParams, len(r.Items))
	for i, it := range r.Items {
		items[i] = commands.BookingItemParams{
			ItemID:   it.ItemID,
			Quantity: it.Quantity,
		}
	}

	var note *string
	if r.Notes != nil {
		trimmed := strings.TrimSpace(*r.Notes)
		if trimmed != "" {
			note = &trimmed
		}
	}

	return commands.CreateBookingParams{
		Items:     items,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Note:      note,
	}
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
