package middleware

import (
	"strings"

	"movie-catalog/internal/apperror"
	"movie-catalog/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// LocalUserID is the fiber.Ctx locals key holding the authenticated user id.
const LocalUserID = "user_id"

// RequireAuth rejects requests without a valid Bearer access token.
func RequireAuth(tokens auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return apperror.AuthenticationRequired("Authentication credentials were not provided.")
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return apperror.AuthenticationInvalid("Authorization header must be 'Bearer <token>'")
		}

		userID, err := tokens.Verify(c.UserContext(), strings.TrimSpace(token))
		if err != nil {
			return err
		}

		c.Locals(LocalUserID, userID)
		return c.Next()
	}
}

// UserID returns the id stored by RequireAuth.
func UserID(c *fiber.Ctx) (uint, error) {
	id, ok := c.Locals(LocalUserID).(uint)
	if !ok || id == 0 {
		return 0, apperror.AuthenticationRequired("Authentication credentials were not provided.")
	}
	return id, nil
}
