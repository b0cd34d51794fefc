package commands

import (
	"context"

	"storeroom-api/internal/domain/booking"
	"storeroom-api/internal/domain/item"
	"storeroom-api/internal/domain/user"
	"storeroom-api/internal/infra"
	"storeroom-api/internal/pkg/clock"
	"storeroom-api/internal/pkg/errs"
	"storeroom-api/internal/usecase/queries"
	"storeroom-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrValidation               = errs.New("invalid booking request")
	ErrItemNotFound             = errs.New("item not found")
	ErrItemInactive             = errs.New("item is not available for booking")
	ErrQuantityExceedsStock     = errs.New("requested quantity exceeds total stock")
	ErrInsufficientAvailability = errs.New("insufficient availability for requested dates")
	ErrBookingNotFound          = errs.New("booking not found")
	ErrDatabaseOperationFailed  = errs.New("store operation failed")
)

type BookingCommands interface {
	// CreateBooking runs the full admission check and, on success, commits
	// exactly one pending booking. Availability is computed and the booking
	// inserted inside one unit of work: no partial admission, no stale read
	// racing another admission on the same items.
	CreateBooking(ctx context.Context, params CreateBookingParams, actor user.Principal) (*queries.BookingView, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, newStatus string, actor user.Principal) (*queries.BookingView, error)
	Delete(ctx context.Context, bookingID uuid.UUID, actor user.Principal) error
}

type bookingUseCaseImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	clock          clock.Clock
}

func NewBookingUseCase(uow shared.UnitOfWork, bookingQueries queries.BookingQueries, clock clock.Clock) BookingCommands {
	return &bookingUseCaseImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		clock:          clock,
	}
}

func (u *bookingUseCaseImpl) CreateBooking(
	ctx context.Context,
	params CreateBookingParams,
	actor user.Principal,
) (*queries.BookingView, error) {
	lines, dates, note, err := u.validateRequest(params)
	if err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		catalog, err := u.resolveItems(ctx, tx, lines)
		if err != nil {
			return err
		}

		existing, err := tx.Bookings().FindOverlapping(ctx, dates)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := checkAvailability(lines, catalog, existing, dates); err != nil {
			return err
		}

		b, err := booking.NewBooking(actor.ID, lines, dates, note, u.clock.Now())
		if err != nil {
			return errs.Mark(err, ErrValidation)
		}

		if err := tx.Bookings().Insert(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		createdID = b.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.bookingQueries.GetByIDSystem(ctx, createdID)
}

func (u *bookingUseCaseImpl) UpdateStatus(
	ctx context.Context,
	bookingID uuid.UUID,
	newStatus string,
	actor user.Principal,
) (*queries.BookingView, error) {
	target, err := booking.ParseStatus(newStatus)
	if err != nil {
		return nil, err
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := booking.CanTransition(actor.Role, actor.Owns(b.UserID()), b.Status(), target); err != nil {
			return err
		}

		b.ApplyStatus(target, u.clock.Now())
		if err := tx.Bookings().Replace(ctx, b.ID(), b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.bookingQueries.GetByIDSystem(ctx, bookingID)
}

func (u *bookingUseCaseImpl) Delete(ctx context.Context, bookingID uuid.UUID, actor user.Principal) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := booking.CanDelete(actor.Role, actor.Owns(b.UserID()), b.Status()); err != nil {
			return err
		}

		if err := tx.Bookings().Remove(ctx, b.ID()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// validateRequest covers the cheap structural checks that need no store
// access: non-empty item list, unique items, positive quantities, date
// ordering and the two-week cap. Failures here are deterministic, so
// re-submitting the same bad request yields the same error.
func (u *bookingUseCaseImpl) validateRequest(params CreateBookingParams) ([]booking.Line, booking.DateRange, booking.Note, error) {
	var none booking.DateRange

	if len(params.Items) == 0 {
		return nil, none, booking.Note{}, errs.Mark(booking.ErrNoItems, ErrValidation)
	}

	dates, err := booking.NewDateRange(params.StartDate, params.EndDate)
	if err != nil {
		return nil, none, booking.Note{}, err
	}

	lines := make([]booking.Line, 0, len(params.Items))
	seen := make(map[uuid.UUID]struct{}, len(params.Items))
	for _, it := range params.Items {
		// Duplicate lines for one item would each be admitted against the
		// same availability figure, overselling the window.
		if _, dup := seen[it.ItemID]; dup {
			return nil, none, booking.Note{}, errs.Mark(booking.ErrDuplicateItem, ErrValidation)
		}
		seen[it.ItemID] = struct{}{}

		line, err := booking.NewLine(it.ItemID, it.Quantity)
		if err != nil {
			return nil, none, booking.Note{}, errs.Mark(err, ErrValidation)
		}
		lines = append(lines, line)
	}

	note := booking.NewNote("")
	if params.Note != nil {
		note = booking.NewNote(*params.Note)
	}

	return lines, dates, note, nil
}

// resolveItems looks up every requested item in the catalog, failing fast on
// missing or inactive items and on quantities no window could ever satisfy.
func (u *bookingUseCaseImpl) resolveItems(ctx context.Context, tx shared.Tx, lines []booking.Line) (map[uuid.UUID]*item.StorageItem, error) {
	catalog := make(map[uuid.UUID]*item.StorageItem, len(lines))
	for _, line := range lines {
		it, err := tx.Items().FindItemByID(ctx, line.ItemID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrItemNotFound
			}
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !it.IsActive() {
			return nil, ErrItemInactive
		}
		if line.Quantity() > it.TotalQuantity() {
			return nil, ErrQuantityExceedsStock
		}
		catalog[line.ItemID()] = it
	}
	return catalog, nil
}

// checkAvailability is all-or-nothing: it scans every requested line before
// deciding, so a rejection names the complete conflict set.
func checkAvailability(lines []booking.Line, catalog map[uuid.UUID]*item.StorageItem, existing []*booking.Booking, dates booking.DateRange) error {
	var shortages []Shortage
	for _, line := range lines {
		it := catalog[line.ItemID()]
		available := booking.Available(existing, line.ItemID(), it.TotalQuantity(), dates)
		if available < line.Quantity() {
			shortages = append(shortages, Shortage{
				ItemID:    line.ItemID(),
				ItemName:  it.Name(),
				Requested: line.Quantity(),
				Available: available,
			})
		}
	}
	if len(shortages) > 0 {
		return errs.Mark(&ShortageError{Shortages: shortages}, ErrInsufficientAvailability)
	}
	return nil
}
