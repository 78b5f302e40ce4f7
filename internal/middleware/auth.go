// Package middleware provides Fiber middleware for authentication, request context, logging, tracing and rate limiting.
package middleware

import (
	"errors"
	"strings"

	"conduit/internal/auth"
	"conduit/internal/models"
	"conduit/internal/observability"

	"github.com/gofiber/fiber/v2"
)

const (
	payloadLocal = "payload"
	userIDLocal  = "userID"
	tokenScheme  = "Token"
)

// TokenVerifier verifies bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Guard authenticates requests carrying "Authorization: Token <jwt>".
// A present but invalid token is always rejected. A missing token is rejected only when required.
func Guard(tokens TokenVerifier, required bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := extractToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			if required {
				observability.AuthFailures.WithLabelValues("missing_token").Inc()
				return models.NewUnauthenticatedError("authorization required")
			}
			return c.Next()
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			reason := "invalid_token"
			if !errors.Is(err, auth.ErrInvalidToken) {
				reason = "verify_error"
			}
			observability.AuthFailures.WithLabelValues(reason).Inc()
			return models.NewUnauthenticatedError("invalid or expired token")
		}

		c.Locals(payloadLocal, claims)
		c.Locals(userIDLocal, claims.ID)
		c.SetUserContext(observability.WithUserID(c.UserContext(), claims.ID))
		return c.Next()
	}
}

// Payload returns the claims attached by Guard, if any.
func Payload(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals(payloadLocal).(*auth.Claims)
	return claims, ok && claims != nil
}

func extractToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || scheme != tokenScheme {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
