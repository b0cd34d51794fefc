//go:build unit

package booking_test

import (
	"testing"
	"time"

	"storeroom-api/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	userID := uuid.New()
	itemID := uuid.New()
	now := day(0)

	line, err := booking.NewLine(itemID, 2)
	require.NoError(t, err)
	dates := mustRange(t, day(1), day(3))

	t.Run("starts pending with creation timestamps", func(t *testing.T) {
		b, err := booking.NewBooking(userID, []booking.Line{line}, dates, booking.NewNote("side door"), now)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, b.ID())
		assert.Equal(t, userID, b.UserID())
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, now, b.CreatedAt())
		assert.Equal(t, now, b.UpdatedAt())
		assert.Equal(t, "side door", b.Note().String())
	})

	t.Run("rejects empty line list", func(t *testing.T) {
		_, err := booking.NewBooking(userID, nil, dates, booking.NewNote(""), now)
		assert.ErrorIs(t, err, booking.ErrNoItems)
	})

	t.Run("rejects repeated item", func(t *testing.T) {
		_, err := booking.NewBooking(userID, []booking.Line{line, line}, dates, booking.NewNote(""), now)
		assert.ErrorIs(t, err, booking.ErrDuplicateItem)
	})

	t.Run("ids are unique", func(t *testing.T) {
		a, err := booking.NewBooking(userID, []booking.Line{line}, dates, booking.NewNote(""), now)
		require.NoError(t, err)
		b, err := booking.NewBooking(userID, []booking.Line{line}, dates, booking.NewNote(""), now)
		require.NoError(t, err)
		assert.NotEqual(t, a.ID(), b.ID())
	})
}

func TestApplyStatus(t *testing.T) {
	b := makeBooking(t, uuid.New(), 1, day(1), day(3), booking.StatusPending)
	created := b.CreatedAt()

	later := day(2).Add(4 * time.Hour)
	b.ApplyStatus(booking.StatusApproved, later)

	assert.Equal(t, booking.StatusApproved, b.Status())
	assert.Equal(t, later, b.UpdatedAt())
	assert.Equal(t, created, b.CreatedAt(), "creation time is immutable")
}

func TestQuantityOf(t *testing.T) {
	itemA := uuid.New()
	itemB := uuid.New()

	lineA, err := booking.NewLine(itemA, 2)
	require.NoError(t, err)
	lineB, err := booking.NewLine(itemB, 5)
	require.NoError(t, err)

	b, err := booking.NewBooking(uuid.New(), []booking.Line{lineA, lineB}, mustRange(t, day(1), day(3)), booking.NewNote(""), day(0))
	require.NoError(t, err)

	assert.Equal(t, 2, b.QuantityOf(itemA))
	assert.Equal(t, 5, b.QuantityOf(itemB))
	assert.Equal(t, 0, b.QuantityOf(uuid.New()))
}
