//go:build unit || e2e

package builder

import (
	"time"

	dombooking "storeroom-api/internal/domain/booking"
	reqdto "storeroom-api/internal/handler/dto/request"
	"storeroom-api/internal/usecase/commands"
	"storeroom-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingItem struct {
	ItemID   uuid.UUID
	ItemName string
	Quantity int
}

type BookingBuilder struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Items     []BookingItem
	StartDate time.Time
	EndDate   time.Time
	Status    dombooking.Status
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	start := now.Add(24 * time.Hour)
	return &BookingBuilder{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Items: []BookingItem{
			{ItemID: uuid.New(), ItemName: "Folding table", Quantity: 2},
		},
		StartDate: start,
		EndDate:   start.Add(48 * time.Hour),
		Status:    dombooking.StatusPending,
		Notes:     "For the spring fair",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *BookingBuilder) WithUserID(id uuid.UUID) *BookingBuilder {
	b.UserID = id
	return b
}

func (b *BookingBuilder) WithItems(items ...BookingItem) *BookingBuilder {
	b.Items = items
	return b
}

func (b *BookingBuilder) WithItem(itemID uuid.UUID, quantity int) *BookingBuilder {
	b.Items = []BookingItem{{ItemID: itemID, Quantity: quantity}}
	return b
}

func (b *BookingBuilder) WithDates(start, end time.Time) *BookingBuilder {
	b.StartDate = start
	b.EndDate = end
	return b
}

func (b *BookingBuilder) WithStatus(status dombooking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithNotes(notes string) *BookingBuilder {
	b.Notes = notes
	return b
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	lines := make([]dombooking.Line, 0, len(b.Items))
	for _, it := range b.Items {
		line, err := dombooking.NewLine(it.ItemID, it.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	dates, err := dombooking.NewDateRange(b.StartDate, b.EndDate)
	if err != nil {
		return nil, err
	}

	return dombooking.NewBooking(b.UserID, lines, dates, dombooking.NewNote(b.Notes), b.CreatedAt)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	items := make([]reqdto.BookingItemRequest, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, reqdto.BookingItemRequest{ItemID: it.ItemID, Quantity: it.Quantity})
	}

	var notes *string
	if b.Notes != "" {
		notes = &b.Notes
	}

	return reqdto.CreateBookingRequest{
		Items:     items,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		Notes:     notes,
	}
}

func (b *BookingBuilder) BuildParams() commands.CreateBookingParams {
	return b.BuildCreateRequestDTO().ToParams()
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	items := make([]queries.BookingItemView, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, queries.BookingItemView{
			ItemID:   it.ItemID,
			ItemName: it.ItemName,
			Quantity: it.Quantity,
		})
	}

	var note *string
	if b.Notes != "" {
		note = &b.Notes
	}

	return &queries.BookingView{
		ID:        b.ID,
		UserID:    b.UserID,
		Items:     items,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		Status:    b.Status.String(),
		Note:      note,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
