package booking

import (
	"errors"

	"storeroom-api/internal/domain/user"
)

var (
	ErrNotAuthorized     = errors.New("not authorized for this booking")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// transitions is the legal state machine, independent of who asks.
// Pending fans out; approved can only be cancelled; rejected and cancelled
// are terminal. Same-status "transitions" are not listed and thus rejected.
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusCancelled},
}

func canReach(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanTransition is the single authorization table for status changes
// (role x ownership x current status x requested status). Staff may apply
// any legal transition. The owner may only cancel, and only while the
// booking is still pending; cancelling an approved booking requires staff.
func CanTransition(role user.Role, isOwner bool, from, to Status) error {
	if !to.IsValid() {
		return ErrInvalidStatus
	}
	if !canReach(from, to) {
		return ErrInvalidTransition
	}
	if role.IsStaff() {
		return nil
	}
	if isOwner && to == StatusCancelled && from == StatusPending {
		return nil
	}
	return ErrNotAuthorized
}

// CanDelete gates hard deletion. Staff delete anything; owners only their
// own pending bookings. Deletion frees the reserved quantity immediately.
func CanDelete(role user.Role, isOwner bool, status Status) error {
	if role.IsStaff() {
		return nil
	}
	if !isOwner {
		return ErrNotAuthorized
	}
	if status != StatusPending {
		return ErrNotAuthorized
	}
	return nil
}
