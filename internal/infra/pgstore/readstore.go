package pgstore

import (
	"context"

	"storeroom-api/internal/domain/booking"
	"storeroom-api/internal/infra"
	"storeroom-api/internal/pkg/pgconv"
	"storeroom-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingReadStore serves the query surface directly from the pool; reads
// need no transaction.
type BookingReadStore struct {
	pool *pgxpool.Pool
}

func NewBookingReadStore(pool *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{pool: pool}
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id = $1", id)

	header, err := scanBooking(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	views, err := s.attachItems(ctx, []*bookingRow{header})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *BookingReadStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]*queries.BookingView, error) {
	return s.list(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE user_id = $1 ORDER BY created_at, id",
		userID)
}

func (s *BookingReadStore) FindAll(ctx context.Context, status *booking.Status) ([]*queries.BookingView, error) {
	if status == nil {
		return s.list(ctx,
			"SELECT "+bookingColumns+" FROM bookings ORDER BY created_at, id")
	}
	return s.list(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE status = $1 ORDER BY created_at, id",
		status.String())
}

func (s *BookingReadStore) list(ctx context.Context, sql string, args ...any) ([]*queries.BookingView, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query bookings", err)
	}
	defer rows.Close()

	var headers []*bookingRow
	for rows.Next() {
		header, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		headers = append(headers, header)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}

	return s.attachItems(ctx, headers)
}

func (s *BookingReadStore) attachItems(ctx context.Context, headers []*bookingRow) ([]*queries.BookingView, error) {
	views := make([]*queries.BookingView, len(headers))
	if len(headers) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, len(headers))
	for i, h := range headers {
		ids[i] = h.id
	}

	rows, err := s.pool.Query(ctx,
		`SELECT bi.booking_id, bi.item_id, si.name, bi.quantity
		 FROM booking_items bi
		 JOIN storage_items si ON si.id = bi.item_id
		 WHERE bi.booking_id = ANY($1)
		 ORDER BY bi.booking_id, bi.position`,
		ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query booking items", err)
	}
	defer rows.Close()

	itemsByBooking := make(map[uuid.UUID][]queries.BookingItemView, len(headers))
	for rows.Next() {
		var (
			bookingID uuid.UUID
			view      queries.BookingItemView
		)
		if err := rows.Scan(&bookingID, &view.ItemID, &view.ItemName, &view.Quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking item row", err)
		}
		itemsByBooking[bookingID] = append(itemsByBooking[bookingID], view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking item rows", err)
	}

	for i, h := range headers {
		views[i] = &queries.BookingView{
			ID:        h.id,
			UserID:    h.userID,
			Items:     itemsByBooking[h.id],
			StartDate: pgconv.TimeFromPgtype(h.start),
			EndDate:   pgconv.TimeFromPgtype(h.end),
			Status:    h.status,
			Note:      pgconv.StringPtrFromPgtype(h.note),
			CreatedAt: pgconv.TimeFromPgtype(h.createdAt),
			UpdatedAt: pgconv.TimeFromPgtype(h.updatedAt),
		}
	}
	return views, nil
}
