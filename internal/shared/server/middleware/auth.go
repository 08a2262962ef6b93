package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/server/respond"
)

const (
	userIDKey   = "userId"
	identityKey = "identity"

	msgAuthRequired = "Authentication required"
	msgInvalidToken = "Invalid or expired token"
)

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(token string) (auth.Claims, error)
}

// Auth guards the per-user routes: resumes, templates, AI and /auth/me.
// Preflight requests pass without a token.
func Auth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok || tokens == nil {
			respond.Unauthorized(c, msgAuthRequired)
			return
		}
		claims, err := tokens.Verify(token)
		if err != nil || claims.Subject == "" {
			respond.Unauthorized(c, msgInvalidToken)
			return
		}

		c.Set(userIDKey, claims.Subject)
		c.Set(identityKey, auth.Identity{
			UserID:  claims.Subject,
			Email:   claims.Email,
			Name:    claims.Name,
			Picture: claims.Picture,
		})
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// UserIDFromContext returns the authenticated user id, or "" on public routes.
func UserIDFromContext(c *gin.Context) string {
	return stringFromContext(c, userIDKey)
}

// IdentityFromContext returns the identity carried by the request's token.
func IdentityFromContext(c *gin.Context) (auth.Identity, bool) {
	if c == nil {
		return auth.Identity{}, false
	}
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

func stringFromContext(c *gin.Context, key string) string {
	if c == nil {
		return ""
	}
	s, _ := c.Get(key)
	str, _ := s.(string)
	return str
}
