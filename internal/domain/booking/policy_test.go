//go:build unit

package booking_test

import (
	"testing"

	"storeroom-api/internal/domain/booking"
	"storeroom-api/internal/domain/user"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		role    user.Role
		isOwner bool
		from    booking.Status
		to      booking.Status
		errIs   error
	}{
		{name: "admin approves pending", role: user.RoleAdmin, from: booking.StatusPending, to: booking.StatusApproved},
		{name: "admin rejects pending", role: user.RoleAdmin, from: booking.StatusPending, to: booking.StatusRejected},
		{name: "admin cancels pending", role: user.RoleAdmin, from: booking.StatusPending, to: booking.StatusCancelled},
		{name: "admin cancels approved", role: user.RoleAdmin, from: booking.StatusApproved, to: booking.StatusCancelled},
		{name: "superAdmin approves pending", role: user.RoleSuperAdmin, from: booking.StatusPending, to: booking.StatusApproved},

		{name: "owner cancels own pending", role: user.RoleMember, isOwner: true, from: booking.StatusPending, to: booking.StatusCancelled},
		{name: "owner cannot cancel own approved", role: user.RoleMember, isOwner: true, from: booking.StatusApproved, to: booking.StatusCancelled, errIs: booking.ErrNotAuthorized},
		{name: "owner cannot approve own pending", role: user.RoleMember, isOwner: true, from: booking.StatusPending, to: booking.StatusApproved, errIs: booking.ErrNotAuthorized},
		{name: "owner cannot reject own pending", role: user.RoleMember, isOwner: true, from: booking.StatusPending, to: booking.StatusRejected, errIs: booking.ErrNotAuthorized},
		{name: "member cannot cancel someone else's pending", role: user.RoleMember, from: booking.StatusPending, to: booking.StatusCancelled, errIs: booking.ErrNotAuthorized},

		{name: "rejected is terminal even for admin", role: user.RoleAdmin, from: booking.StatusRejected, to: booking.StatusApproved, errIs: booking.ErrInvalidTransition},
		{name: "cancelled is terminal even for admin", role: user.RoleAdmin, from: booking.StatusCancelled, to: booking.StatusPending, errIs: booking.ErrInvalidTransition},
		{name: "approved cannot go back to pending", role: user.RoleAdmin, from: booking.StatusApproved, to: booking.StatusPending, errIs: booking.ErrInvalidTransition},
		{name: "approved cannot be rejected", role: user.RoleAdmin, from: booking.StatusApproved, to: booking.StatusRejected, errIs: booking.ErrInvalidTransition},
		{name: "same status is not a transition", role: user.RoleAdmin, from: booking.StatusPending, to: booking.StatusPending, errIs: booking.ErrInvalidTransition},

		{name: "unknown target status", role: user.RoleAdmin, from: booking.StatusPending, to: booking.Status("archived"), errIs: booking.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := booking.CanTransition(tt.role, tt.isOwner, tt.from, tt.to)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCanDelete(t *testing.T) {
	tests := []struct {
		name    string
		role    user.Role
		isOwner bool
		status  booking.Status
		errIs   error
	}{
		{name: "admin deletes any pending", role: user.RoleAdmin, status: booking.StatusPending},
		{name: "admin deletes any approved", role: user.RoleAdmin, status: booking.StatusApproved},
		{name: "superAdmin deletes any cancelled", role: user.RoleSuperAdmin, status: booking.StatusCancelled},
		{name: "owner deletes own pending", role: user.RoleMember, isOwner: true, status: booking.StatusPending},
		{name: "owner cannot delete own approved", role: user.RoleMember, isOwner: true, status: booking.StatusApproved, errIs: booking.ErrNotAuthorized},
		{name: "owner cannot delete own rejected", role: user.RoleMember, isOwner: true, status: booking.StatusRejected, errIs: booking.ErrNotAuthorized},
		{name: "member cannot delete someone else's pending", role: user.RoleMember, status: booking.StatusPending, errIs: booking.ErrNotAuthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := booking.CanDelete(tt.role, tt.isOwner, tt.status)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
