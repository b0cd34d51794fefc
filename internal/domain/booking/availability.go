package booking

import "github.com/google/uuid"

// CommittedQuantity sums the quantity of itemID across bookings that hold
// stock (pending or approved) and whose dates overlap the window. Overlap is
// the half-open test of DateRange.Overlaps: back-to-back bookings do not
// conflict.
func CommittedQuantity(existing []*Booking, itemID uuid.UUID, window DateRange) int {
	committed := 0
	for _, b := range existing {
		if !b.Status().Holds() {
			continue
		}
		if !b.Dates().Overlaps(window) {
			continue
		}
		committed += b.QuantityOf(itemID)
	}
	return committed
}

// Available returns the stock left for itemID in the window, never below 0.
func Available(existing []*Booking, itemID uuid.UUID, totalQuantity int, window DateRange) int {
	remaining := totalQuantity - CommittedQuantity(existing, itemID, window)
	if remaining < 0 {
		return 0
	}
	return remaining
}
