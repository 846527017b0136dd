// Package middleware provides authentication, logging, rate limiting, and
// tracing middleware for the application.
package middleware

import (
	"context"
	"errors"
	"strings"

	"devfolio/internal/auth"
	"devfolio/internal/models"
	"devfolio/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired enforces authentication on protected routes. The resolved
// user ID is stored in c.Locals("userID"); handlers must take the identity
// from there and never from the request body.
func AuthRequired(tm *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			observability.AuthRejections.WithLabelValues("missing_token").Inc()
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization header required"))
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			observability.AuthRejections.WithLabelValues("malformed_header").Inc()
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid authorization header format"))
		}

		userID, err := tm.Verify(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				observability.AuthRejections.WithLabelValues("expired_token").Inc()
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Token expired"))
			}
			observability.AuthRejections.WithLabelValues("invalid_token").Inc()
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token"))
		}

		c.Locals("userID", userID)
		// Sync into the request context so the context-aware logger and
		// deeper layers see the identity too.
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))

		return c.Next()
	}
}
