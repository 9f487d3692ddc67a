package cnst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservedValues(t *testing.T) {
	assert.Equal(t, "master", MasterTenantCode)
	assert.Equal(t, "all", RoleFilterAll)
	assert.Equal(t, "user_id", XUserID)
}

func TestRolesDistinct(t *testing.T) {
	roles := []string{RoleSuperAdmin, RoleManager, RoleRep}
	seen := make(map[string]bool, len(roles))
	for _, r := range roles {
		assert.False(t, seen[r], r)
		seen[r] = true
	}
}
