package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prysmhq/prysm_backend/internal/auth"
)

const identityKey = "identity"

// AccessCookie is the cookie carrying the access token.
const AccessCookie = "accessToken"

// RefreshCookie is the cookie carrying the refresh token.
const RefreshCookie = "refreshToken"

// AuthMiddleware pulls the access token out of its cookie and resolves it to
// an identity. Resolution is claims-only, no store round trip per request. Any
// failure aborts with 401 and no partial identity is attached.
func AuthMiddleware(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(AccessCookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		identity, err := svc.Resolve(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// CurrentIdentity returns the identity attached by AuthMiddleware.
func CurrentIdentity(c *gin.Context) (*auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*auth.Identity)
	return identity, ok
}
