package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/codebin/codebin/internal/apperror"
	"github.com/codebin/codebin/internal/config"
	"github.com/codebin/codebin/internal/sessions"
	"github.com/codebin/codebin/internal/tokens"
	"github.com/codebin/codebin/pkg/logger"
	"github.com/codebin/codebin/pkg/metrics"
)

// claimsKey is the gin context key under which verified claims are stored.
const claimsKey = "claims"

// Auth returns the auth gate: it extracts the bearer token, verifies it and
// attaches the decoded claims to the request context, or routes an
// Unauthenticated failure into the error pipeline. All verification
// sub-reasons produce the same generic message so the response does not act
// as an oracle. The blacklist may be nil.
func Auth(cfg *config.Config, blacklist *sessions.Blacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			reject(c, "missing")
			return
		}

		if revoked, err := blacklist.Contains(c.Request.Context(), raw); err != nil {
			// fail open like the Redis rate limiter: a blacklist outage must
			// not take the API down, but it has to leave a trace
			logger.Warnf("token blacklist check failed, skipping revocation check: %v", err)
			metrics.BlacklistErrors.Inc()
		} else if revoked {
			reject(c, "revoked")
			return
		}

		claims, err := tokens.Verify(cfg, raw)
		if err != nil {
			reject(c, "invalid")
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the verified claims attached by the auth gate.
func ClaimsFrom(c *gin.Context) (*tokens.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*tokens.Claims)
	return claims, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	if auth == "" {
		return "", false
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func reject(c *gin.Context, reason string) {
	metrics.AuthRejected.WithLabelValues(reason).Inc()
	// one generic message for every rejection; the reason stays in metrics
	_ = c.Error(apperror.NewUnauthenticated("authentication required", nil))
	c.Abort()
}
