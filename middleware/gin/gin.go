// Package gin provides Gin middleware for monthly quota enforcement.
package gin

import (
	"net/http"

	gongin "github.com/gin-gonic/gin"

	"github.com/viralprompt/scriptgen/pkg/identity"
	"github.com/viralprompt/scriptgen/pkg/quota"
)

// IdentityExtractor derives the rate-limit subject from a Gin context.
type IdentityExtractor func(c *gongin.Context) string

// Config holds middleware configuration.
type Config struct {
	// Limiter enforces the monthly quota (required).
	Limiter *quota.Limiter

	// GetIdentity derives the identity from the context.
	// Default: Gin's ClientIP.
	GetIdentity IdentityExtractor

	// OnLimited is called when quota is exhausted.
	// If nil, aborts with 402 and the overLimit JSON shape.
	OnLimited func(c *gongin.Context, d quota.Decision)

	// OnError is called when the counter store fails.
	// If nil, aborts with 500.
	OnError func(c *gongin.Context, err error)
}

// Middleware creates a Gin middleware that enforces the monthly quota.
func Middleware(config Config) gongin.HandlerFunc {
	// Set defaults
	if config.GetIdentity == nil {
		config.GetIdentity = func(c *gongin.Context) string {
			return identity.Resolve("", c.GetHeader(identity.ForwardedForHeader), c.ClientIP())
		}
	}

	return func(c *gongin.Context) {
		id := config.GetIdentity(c)

		decision, err := config.Limiter.Admit(c.Request.Context(), id)
		if err != nil {
			if config.OnError != nil {
				config.OnError(c, err)
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gongin.H{
					"error": "Internal Server Error",
				})
			}
			return
		}

		if !decision.Admitted {
			if config.OnLimited != nil {
				config.OnLimited(c, decision)
			} else {
				c.AbortWithStatusJSON(http.StatusPaymentRequired, gongin.H{
					"error":     "Free limit reached",
					"overLimit": true,
					"remaining": 0,
				})
			}
			return
		}

		c.Next()
	}
}
