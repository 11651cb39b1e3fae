package auth

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	contextKeyIdentity = "identity"

	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
)

// IdentityFromContext returns the identity set by RequireBearer.
func IdentityFromContext(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(contextKeyIdentity)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// UserIDFromContext returns the current user ID set by RequireBearer. "" if not set.
func UserIDFromContext(c *gin.Context) string {
	id, _ := IdentityFromContext(c)
	return id.UserID
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return "", false
	}
	tok := strings.TrimSpace(h[len(prefix):])
	return tok, tok != ""
}

// RequireBearer returns a middleware that verifies the bearer token, rejects revoked tokens
// and exposes the identity to handlers through the gin context and the X-User-* request headers.
// revoked may be nil.
func RequireBearer(issuer *Issuer, revoked RevocationList) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Never trust identity headers sent by the client.
		c.Request.Header.Del(HeaderUserID)
		c.Request.Header.Del(HeaderUserEmail)

		token, ok := BearerToken(c.Request)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
			return
		}
		id, err := issuer.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied. Invalid token."})
			return
		}
		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), id.TokenID)
			if err != nil {
				log.Printf("auth: revocation lookup: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
			if isRevoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied. Invalid token."})
				return
			}
		}
		c.Set(contextKeyIdentity, id)
		c.Request.Header.Set(HeaderUserID, id.UserID)
		c.Request.Header.Set(HeaderUserEmail, id.Email)
		c.Next()
	}
}
