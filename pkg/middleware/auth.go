package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avtostart/avtostart-backend/pkg/envelope"
	"github.com/gin-gonic/gin"
)

// Token is minimal interface for a verified token that can expose claims
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// AuthMiddleware returns a Gin middleware that verifies Bearer tokens using
// the provided verifier and stores the claims map in the request context.
func AuthMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			envelope.AbortFail(c, http.StatusUnauthorized, "missing Authorization header")
			return
		}
		// Expect 'Bearer <token>'
		var token string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &token); n != 1 {
			envelope.AbortFail(c, http.StatusUnauthorized, "invalid Authorization header")
			return
		}

		idToken, err := ver.Verify(c.Request.Context(), token)
		if err != nil {
			envelope.AbortFail(c, http.StatusUnauthorized, "invalid token")
			return
		}

		var claims map[string]interface{}
		if err := idToken.Claims(&claims); err != nil {
			envelope.AbortFail(c, http.StatusUnauthorized, "failed to parse claims")
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

// OptionalAuthMiddleware verifies a Bearer token when one is presented and
// stores its claims, but lets anonymous requests through untouched. Public
// reads stay open; the capability gate decides on mutations.
func OptionalAuthMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || ver == nil {
			c.Next()
			return
		}
		var token string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &token); n != 1 {
			envelope.AbortFail(c, http.StatusUnauthorized, "invalid Authorization header")
			return
		}
		idToken, err := ver.Verify(c.Request.Context(), token)
		if err != nil {
			envelope.AbortFail(c, http.StatusUnauthorized, "invalid token")
			return
		}
		var claims map[string]interface{}
		if err := idToken.Claims(&claims); err != nil {
			envelope.AbortFail(c, http.StatusUnauthorized, "failed to parse claims")
			return
		}
		c.Set("claims", claims)
		c.Next()
	}
}

// Subject extracts the authenticated subject from the claims stored by
// AuthMiddleware. Returns the empty string for anonymous requests.
func Subject(c *gin.Context) string {
	v, ok := c.Get("claims")
	if !ok {
		return ""
	}
	cm, ok := v.(map[string]interface{})
	if !ok {
		return ""
	}
	if name, ok := cm["preferred_username"].(string); ok && name != "" {
		return name
	}
	sub, _ := cm["sub"].(string)
	return sub
}
