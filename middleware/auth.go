package middleware

import (
	"net/http"
	"strings"

	"eastside-storefront/firebase"

	"github.com/gin-gonic/gin"
)

const (
	identityKey = "identity"
	idTokenKey  = "id_token"
)

// AuthMiddleware verifies the Firebase ID token in the Authorization header.
func AuthMiddleware(verifier firebase.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Set(idTokenKey, parts[1])
		c.Next()
	}
}

// AdminMiddleware requires the admin role scoped to storeID. Run it after AuthMiddleware.
func AdminMiddleware(storeID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok || !identity.IsAdminFor(storeID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetIdentity returns the caller verified by AuthMiddleware.
func GetIdentity(c *gin.Context) (*firebase.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*firebase.Identity)
	return identity, ok
}

// IDToken returns the raw bearer token, forwarded to callable functions.
func IDToken(c *gin.Context) string {
	return c.GetString(idTokenKey)
}
