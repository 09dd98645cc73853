package middleware

import (
	"net/http"
	"strconv"

	"go-recruitment-platform/internal/delivery/http/response"
	"go-recruitment-platform/internal/domain"

	"github.com/gin-gonic/gin"
)

// UserIDHeader carries the authenticated numeric identifier, injected by the
// gateway after token verification.
const UserIDHeader = "X-User-ID"

// RequireUserID extracts the trusted identity header. The service does not
// authenticate; it only accepts the asserted identifier as ground truth, so
// an absent header is a hard 401.
func RequireUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserIDHeader)
		if raw == "" {
			response.Error(c, http.StatusUnauthorized, "User ID header missing", nil)
			c.Abort()
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid user ID header", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), userID)
		c.Next()
	}
}

// UserID reads the identity set by RequireUserID.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(string(domain.KeyUserID))
}
