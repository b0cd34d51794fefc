package pgstore

import (
	"context"

	"storeroom-api/internal/domain/booking"
	"storeroom-api/internal/infra"
	"storeroom-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DB is satisfied by both *pgxpool.Pool and pgx.Tx.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type BookingRepository struct {
	db DB
}

func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = "id, user_id, start_date, end_date, status, note, created_at, updated_at"

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id = $1", id)

	b, err := scanBooking(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	lines, err := r.loadLines(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	return withLines(b, lines[id]), nil
}

// FindOverlapping applies the half-open window test in SQL; only bookings
// that still hold stock are candidates.
func (r *BookingRepository) FindOverlapping(ctx context.Context, window booking.DateRange) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+bookingColumns+` FROM bookings
		 WHERE status IN ('pending', 'approved')
		   AND start_date < $2 AND end_date > $1
		 ORDER BY created_at, id`,
		window.Start(), window.End())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query overlapping bookings", err)
	}
	defer rows.Close()

	var (
		headers []*bookingRow
		ids     []uuid.UUID
	)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		headers = append(headers, b)
		ids = append(ids, b.id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	if len(headers) == 0 {
		return nil, nil
	}

	lines, err := r.loadLines(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*booking.Booking, len(headers))
	for i, h := range headers {
		out[i] = withLines(h, lines[h.id])
	}
	return out, nil
}

func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO bookings (id, user_id, start_date, end_date, status, note, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID(), b.UserID(), b.Dates().Start(), b.Dates().End(),
		b.Status().String(), noteToPgtype(b), b.CreatedAt(), b.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to insert booking", err)
	}

	for pos, line := range b.Lines() {
		_, err := r.db.Exec(ctx,
			`INSERT INTO booking_items (booking_id, item_id, quantity, position)
			 VALUES ($1, $2, $3, $4)`,
			b.ID(), line.ItemID(), line.Quantity(), pos)
		if err != nil {
			return infra.WrapRepoErr("failed to insert booking item", err)
		}
	}
	return nil
}

// Replace persists the mutable fields only; owner, items and dates are
// immutable after admission.
func (r *BookingRepository) Replace(ctx context.Context, id uuid.UUID, b *booking.Booking) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE bookings SET status = $2, note = $3, updated_at = $4 WHERE id = $1`,
		id, b.Status().String(), noteToPgtype(b), b.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) Remove(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM bookings WHERE id = $1", id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) loadLines(ctx context.Context, bookingIDs []uuid.UUID) (map[uuid.UUID][]booking.Line, error) {
	rows, err := r.db.Query(ctx,
		`SELECT booking_id, item_id, quantity FROM booking_items
		 WHERE booking_id = ANY($1) ORDER BY booking_id, position`,
		bookingIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query booking items", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]booking.Line, len(bookingIDs))
	for rows.Next() {
		var (
			bookingID uuid.UUID
			itemID    uuid.UUID
			quantity  int
		)
		if err := rows.Scan(&bookingID, &itemID, &quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking item row", err)
		}
		line, err := booking.NewLine(itemID, quantity)
		if err != nil {
			return nil, infra.WrapRepoErr("stored booking item violates domain rules", err)
		}
		out[bookingID] = append(out[bookingID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking item rows", err)
	}
	return out, nil
}

type bookingRow struct {
	id        uuid.UUID
	userID    uuid.UUID
	start     pgtype.Timestamptz
	end       pgtype.Timestamptz
	status    string
	note      pgtype.Text
	createdAt pgtype.Timestamptz
	updatedAt pgtype.Timestamptz
}

func scanBooking(row pgx.Row) (*bookingRow, error) {
	var b bookingRow
	err := row.Scan(&b.id, &b.userID, &b.start, &b.end, &b.status, &b.note, &b.createdAt, &b.updatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func withLines(row *bookingRow, lines []booking.Line) *booking.Booking {
	note := ""
	if row.note.Valid {
		note = row.note.String
	}
	return booking.Reconstruct(
		row.id,
		row.userID,
		lines,
		booking.ReconstructDateRange(pgconv.TimeFromPgtype(row.start), pgconv.TimeFromPgtype(row.end)),
		booking.Status(row.status),
		booking.NewNote(note),
		pgconv.TimeFromPgtype(row.createdAt),
		pgconv.TimeFromPgtype(row.updatedAt),
	)
}

func noteToPgtype(b *booking.Booking) pgtype.Text {
	if b.Note().IsEmpty() {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: b.Note().String(), Valid: true}
}
