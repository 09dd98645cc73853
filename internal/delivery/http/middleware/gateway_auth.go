package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"go-recruitment-platform/internal/delivery/http/response"
	"go-recruitment-platform/pkg/token"

	"github.com/gin-gonic/gin"
)

// GatewayAuth verifies the Bearer token at the edge and forwards the
// verified identity as the X-User-ID header. Paths listed in publicPaths
// pass through without a token. Any client-supplied X-User-ID is always
// stripped; only the gateway may assert it.
func GatewayAuth(secret string, publicPaths map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Never trust an inbound identity header
		c.Request.Header.Del(UserIDHeader)

		// Allow preflight requests to pass through
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		if publicPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "Missing Authorization Header", nil)
			c.Abort()
			return
		}

		claims, err := token.Parse(secret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid Token", nil)
			c.Abort()
			return
		}

		c.Request.Header.Set(UserIDHeader, strconv.FormatInt(claims.IdentityID, 10))
		c.Next()
	}
}
