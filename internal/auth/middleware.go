package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/telmov/inkpress/internal/model"
)

const identityKey = "identity"

// Authenticate extracts and verifies the bearer token, storing the caller's
// identity on the request context. Requests without a valid token are
// rejected with 401.
func Authenticate(tm *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		identity, err := tm.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom retrieves the authenticated caller set by Authenticate.
func IdentityFrom(c *gin.Context) (model.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return model.Identity{}, false
	}
	identity, ok := v.(model.Identity)
	return identity, ok
}
