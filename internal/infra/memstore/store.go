// Package memstore keeps the booking store in process memory behind a single
// mutex. Every unit of work runs in the critical section, so check-then-act
// admission is serialized by construction; mutations are buffered per
// transaction and applied only when the unit of work returns nil.
package memstore

import (
	"context"
	"sync"

	"storeroom-api/internal/domain/booking"
	"storeroom-api/internal/domain/item"
	"storeroom-api/internal/infra"
	"storeroom-api/internal/usecase/queries"
	"storeroom-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]*booking.Booking
	order    []uuid.UUID // insertion order, for stable listings
	items    map[uuid.UUID]*item.StorageItem
}

func NewStore(catalog ...*item.StorageItem) *Store {
	s := &Store{
		bookings: make(map[uuid.UUID]*booking.Booking),
		items:    make(map[uuid.UUID]*item.StorageItem),
	}
	for _, it := range catalog {
		s.items[it.ID()] = it
	}
	return s
}

// Within implements shared.UnitOfWork as a single-writer section.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for _, apply := range tx.pending {
		apply()
	}
	return nil
}

type memTx struct {
	store   *Store
	pending []func()
}

func (t *memTx) Bookings() shared.BookingRepository { return &bookingRepo{tx: t} }
func (t *memTx) Items() shared.ItemReader           { return &itemReader{store: t.store} }

type bookingRepo struct {
	tx *memTx
}

func (r *bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.tx.store.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return clone(b), nil
}

func (r *bookingRepo) FindOverlapping(_ context.Context, window booking.DateRange) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, id := range r.tx.store.order {
		b := r.tx.store.bookings[id]
		if b.Status().Holds() && b.Dates().Overlaps(window) {
			out = append(out, clone(b))
		}
	}
	return out, nil
}

func (r *bookingRepo) Insert(_ context.Context, b *booking.Booking) error {
	if _, exists := r.tx.store.bookings[b.ID()]; exists {
		return infra.WrapRepoErr("booking id already exists", nil, infra.KindDuplicateKey)
	}
	snapshot := clone(b)
	r.tx.pending = append(r.tx.pending, func() {
		r.tx.store.bookings[snapshot.ID()] = snapshot
		r.tx.store.order = append(r.tx.store.order, snapshot.ID())
	})
	return nil
}

func (r *bookingRepo) Replace(_ context.Context, id uuid.UUID, b *booking.Booking) error {
	if _, ok := r.tx.store.bookings[id]; !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	snapshot := clone(b)
	r.tx.pending = append(r.tx.pending, func() {
		r.tx.store.bookings[id] = snapshot
	})
	return nil
}

func (r *bookingRepo) Remove(_ context.Context, id uuid.UUID) error {
	if _, ok := r.tx.store.bookings[id]; !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	r.tx.pending = append(r.tx.pending, func() {
		delete(r.tx.store.bookings, id)
		for i, oid := range r.tx.store.order {
			if oid == id {
				r.tx.store.order = append(r.tx.store.order[:i], r.tx.store.order[i+1:]...)
				break
			}
		}
	})
	return nil
}

type itemReader struct {
	store *Store
}

func (r *itemReader) FindItemByID(_ context.Context, id uuid.UUID) (*item.StorageItem, error) {
	it, ok := r.store.items[id]
	if !ok {
		return nil, infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return it, nil
}

// clone keeps transaction-local aggregates from aliasing committed state.
func clone(b *booking.Booking) *booking.Booking {
	lines := make([]booking.Line, len(b.Lines()))
	copy(lines, b.Lines())
	return booking.Reconstruct(
		b.ID(), b.UserID(), lines, b.Dates(), b.Status(), b.Note(),
		b.CreatedAt(), b.UpdatedAt(),
	)
}

// ---------------------------------------------------------------------------
// Read side
// ---------------------------------------------------------------------------

func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return s.toView(b), nil
}

func (s *Store) FindByUser(_ context.Context, userID uuid.UUID) ([]*queries.BookingView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*queries.BookingView, 0)
	for _, id := range s.order {
		b := s.bookings[id]
		if b.UserID() == userID {
			out = append(out, s.toView(b))
		}
	}
	return out, nil
}

func (s *Store) FindAll(_ context.Context, status *booking.Status) ([]*queries.BookingView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*queries.BookingView, 0)
	for _, id := range s.order {
		b := s.bookings[id]
		if status != nil && b.Status() != *status {
			continue
		}
		out = append(out, s.toView(b))
	}
	return out, nil
}

func (s *Store) toView(b *booking.Booking) *queries.BookingView {
	items := make([]queries.BookingItemView, len(b.Lines()))
	for i, l := range b.Lines() {
		name := ""
		if it, ok := s.items[l.ItemID()]; ok {
			name = it.Name()
		}
		items[i] = queries.BookingItemView{
			ItemID:   l.ItemID(),
			ItemName: name,
			Quantity: l.Quantity(),
		}
	}

	var note *string
	if !b.Note().IsEmpty() {
		v := b.Note().String()
		note = &v
	}

	return &queries.BookingView{
		ID:        b.ID(),
		UserID:    b.UserID(),
		Items:     items,
		StartDate: b.Dates().Start(),
		EndDate:   b.Dates().End(),
		Status:    b.Status().String(),
		Note:      note,
		CreatedAt: b.CreatedAt(),
		UpdatedAt: b.UpdatedAt(),
	}
}
