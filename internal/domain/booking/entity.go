package booking

import (
	"time"

	"github.com/google/uuid"
)

// Booking is created exclusively by the admission engine and mutated only
// through ApplyStatus. Owner, items and dates are immutable after creation.
type Booking struct {
	id        uuid.UUID
	userID    uuid.UUID
	lines     []Line
	dates     DateRange
	status    Status
	note      Note
	createdAt time.Time
	updatedAt time.Time
}

func NewBooking(userID uuid.UUID, lines []Line, dates DateRange, note Note, now time.Time) (*Booking, error) {
	if len(lines) == 0 {
		return nil, ErrNoItems
	}
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, l := range lines {
		if _, dup := seen[l.itemID]; dup {
			return nil, ErrDuplicateItem
		}
		seen[l.itemID] = struct{}{}
	}
	return &Booking{
		id:        uuid.New(),
		userID:    userID,
		lines:     lines,
		dates:     dates,
		status:    StatusPending,
		note:      note,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func Reconstruct(
	id, userID uuid.UUID,
	lines []Line,
	dates DateRange,
	status Status,
	note Note,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		userID:    userID,
		lines:     lines,
		dates:     dates,
		status:    status,
		note:      note,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ApplyStatus records a transition already cleared by the policy table.
func (b *Booking) ApplyStatus(status Status, now time.Time) {
	b.status = status
	b.updatedAt = now
}

// QuantityOf returns the booked quantity of one item, 0 when absent.
func (b *Booking) QuantityOf(itemID uuid.UUID) int {
	for _, l := range b.lines {
		if l.itemID == itemID {
			return l.quantity
		}
	}
	return 0
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) UserID() uuid.UUID    { return b.userID }
func (b *Booking) Lines() []Line        { return b.lines }
func (b *Booking) Dates() DateRange     { return b.dates }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) Note() Note           { return b.note }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
