package shared

import (
	"context"

	"storeroom-api/internal/domain/booking"
	"storeroom-api/internal/domain/item"

	"github.com/google/uuid"
)

// UnitOfWork serializes check-then-act sequences against the booking store.
// Implementations either queue all writers behind one lock (memstore) or run
// fn inside a serializable transaction and retry on conflict (pgstore).
// Store-level retries re-run fn with the same already-validated input.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Items() ItemReader
}

// BookingRepository is the write-side store surface required by the
// admission engine and lifecycle manager.
type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// FindOverlapping returns bookings holding stock (pending or approved)
	// whose dates overlap the window. Implementations may over-approximate;
	// the availability calculator re-checks overlap on domain types.
	FindOverlapping(ctx context.Context, window booking.DateRange) ([]*booking.Booking, error)
	Insert(ctx context.Context, b *booking.Booking) error
	Replace(ctx context.Context, id uuid.UUID, b *booking.Booking) error
	Remove(ctx context.Context, id uuid.UUID) error
}

// ItemReader is the inventory catalog surface consumed read-only here.
type ItemReader interface {
	FindItemByID(ctx context.Context, id uuid.UUID) (*item.StorageItem, error)
}
