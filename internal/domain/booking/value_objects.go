package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const MaxDuration = 14 * 24 * time.Hour

var (
	ErrInvalidDateRange = errors.New("end date must be after start date")
	ErrDurationTooLong  = errors.New("booking duration cannot exceed 2 weeks")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrNoItems          = errors.New("booking must contain at least one item")
	ErrDuplicateItem    = errors.New("booking lists the same item more than once")
)

// DateRange is a half-open interval [start, end). The end instant is the
// moment committed use stops, so a booking ending exactly when another
// starts does not overlap it.
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	if !end.After(start) {
		return DateRange{}, ErrInvalidDateRange
	}
	if end.Sub(start) > MaxDuration {
		return DateRange{}, ErrDurationTooLong
	}
	return DateRange{start: start, end: end}, nil
}

// ReconstructDateRange restores a persisted range without re-validating.
func ReconstructDateRange(start, end time.Time) DateRange {
	return DateRange{start: start, end: end}
}

func (r DateRange) Start() time.Time {
	return r.start
}

func (r DateRange) End() time.Time {
	return r.end
}

func (r DateRange) Duration() time.Duration {
	return r.end.Sub(r.start)
}

// Overlaps uses the half-open interval test: s1 < e2 && e1 > s2.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.start.Before(other.end) && r.end.After(other.start)
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s,%s)", r.start.Format(time.RFC3339), r.end.Format(time.RFC3339))
}

// Line is one itemID+quantity pair of a booking request.
type Line struct {
	itemID   uuid.UUID
	quantity int
}

func NewLine(itemID uuid.UUID, quantity int) (Line, error) {
	if quantity <= 0 {
		return Line{}, ErrInvalidQuantity
	}
	return Line{itemID: itemID, quantity: quantity}, nil
}

func (l Line) ItemID() uuid.UUID {
	return l.itemID
}

func (l Line) Quantity() int {
	return l.quantity
}

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: value}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
