//go:build unit

package user_test

import (
	"testing"

	"storeroom-api/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRole(t *testing.T) {
	for _, valid := range []string{"member", "admin", "superAdmin"} {
		t.Run(valid, func(t *testing.T) {
			role, err := user.NewRole(valid)
			require.NoError(t, err)
			assert.Equal(t, valid, role.String())
		})
	}

	for _, invalid := range []string{"", "Member", "root", "ADMIN"} {
		t.Run("invalid: "+invalid, func(t *testing.T) {
			_, err := user.NewRole(invalid)
			assert.Error(t, err)
		})
	}
}

func TestIsStaff(t *testing.T) {
	assert.False(t, user.RoleMember.IsStaff())
	assert.True(t, user.RoleAdmin.IsStaff())
	assert.True(t, user.RoleSuperAdmin.IsStaff())
}

func TestPrincipalOwns(t *testing.T) {
	id := uuid.New()
	p := user.Principal{ID: id, Role: user.RoleMember}

	assert.True(t, p.Owns(id))
	assert.False(t, p.Owns(uuid.New()))
}
