package queries

import (
	"context"

	"storeroom-api/internal/domain/booking"
	"storeroom-api/internal/domain/user"
	"storeroom-api/internal/infra"
	"storeroom-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrNotAuthorized   = errs.New("not authorized to view this booking")
)

type BookingQueries interface {
	// GetByID returns the booking when the actor owns it or is staff.
	GetByID(ctx context.Context, actor user.Principal, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem bypasses the ownership check, for read-after-write.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingView, error)
	// ListAll optionally filters by status; the admin route gate lives in
	// the router middleware.
	ListAll(ctx context.Context, status *booking.Status) ([]*BookingView, error)
}

// BookingReadStore is the query surface of the booking store.
type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*BookingView, error)
	FindAll(ctx context.Context, status *booking.Status) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor user.Principal, id uuid.UUID) (*BookingView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(view.UserID) && !actor.Role.IsStaff() {
		return nil, ErrNotAuthorized
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingView, error) {
	return q.store.FindByUser(ctx, userID)
}

func (q *bookingQueriesImpl) ListAll(ctx context.Context, status *booking.Status) ([]*BookingView, error) {
	return q.store.FindAll(ctx, status)
}
