package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/geomark/geomark/pkg/metrics"
)

// Token is the minimal interface for a verified token that can expose claims
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

func abortAuth(c *gin.Context, status int, message, reason string) {
	metrics.AuthRejected.WithLabelValues(reason).Inc()
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": status, "message": message})
}

// RequireScope returns a middleware that verifies the Bearer token and checks
// that the granted scope set contains the required scope. Verified claims are
// stored under "claims" for downstream handlers and the rate limiter.
//
// Failure modes map to distinct responses: missing header and malformed
// header/token are 401, a token that fails verification is 401, a valid token
// without the scope is 403. None of these reach the handler.
func RequireScope(ver Verifier, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortAuth(c, http.StatusUnauthorized, "authorization_header_missing", "missing_token")
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortAuth(c, http.StatusUnauthorized, "invalid_header", "malformed_header")
			return
		}

		token, err := ver.Verify(c.Request.Context(), parts[1])
		if err != nil {
			abortAuth(c, http.StatusUnauthorized, "invalid_token", "invalid_token")
			return
		}

		var claims map[string]interface{}
		if err := token.Claims(&claims); err != nil {
			abortAuth(c, http.StatusUnauthorized, "invalid_token", "invalid_claims")
			return
		}

		if !hasScope(claims, scope) {
			abortAuth(c, http.StatusForbidden, "insufficient_scope", "insufficient_scope")
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

// hasScope checks the token's granted scopes. Auth0-style tokens carry either
// a space-separated "scope" string, a "permissions" array, or both.
func hasScope(claims map[string]interface{}, required string) bool {
	if s, ok := claims["scope"].(string); ok {
		for _, granted := range strings.Fields(s) {
			if granted == required {
				return true
			}
		}
	}
	if perms, ok := claims["permissions"].([]interface{}); ok {
		for _, p := range perms {
			if granted, ok := p.(string); ok && granted == required {
				return true
			}
		}
	}
	return false
}
