package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/crmdeck/crmdeck/internal/apiserver/database"
	"github.com/crmdeck/crmdeck/internal/common/cnst"
	"github.com/crmdeck/crmdeck/internal/i18n"
)

const currentUserKey = "current_user"

// Identity resolves the user_id header to a user row and stores it in
// the request context. Requests without a resolvable identity are
// rejected with 401.
func Identity(db database.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(cnst.XUserID)
		if raw == "" {
			i18n.RespondWithError(c, i18n.ErrNotAuthenticated)
			c.Abort()
			return
		}

		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			i18n.RespondWithError(c, i18n.ErrNotAuthenticated)
			c.Abort()
			return
		}

		user, err := db.GetUserByID(c.Request.Context(), uint(id))
		if err != nil {
			i18n.RespondWithError(c, i18n.ErrNotAuthenticated)
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// SuperAdminOnly rejects callers whose resolved identity is not a superadmin
func SuperAdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != cnst.RoleSuperAdmin {
			i18n.RespondWithError(c, i18n.ErrSuperadminOnly)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity resolved by Identity, or nil
func CurrentUser(c *gin.Context) *database.User {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, ok := v.(*database.User)
	if !ok {
		return nil
	}
	return user
}
