package middleware

import (
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/identity"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const tokenKey = "token"

// JWTProtected verifies the bearer token and leaves the parsed token in
// locals for RequireOwner.
func JWTProtected(tokens *auth.TokenService) fiber.Handler {
	return jwtware.New(jwtware.Config{
		KeyFunc:    tokens.Keyfunc,
		Claims:     &auth.Claims{},
		ContextKey: tokenKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return apperr.Authentication("Unauthorized: invalid or expired token", err)
		},
	})
}

// RequireOwner lets the request through only when policy allows the token's
// user to act on the :userId in the path.
func RequireOwner(policy auth.Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, _ := c.Locals(tokenKey).(*jwt.Token)
		userID, err := auth.UserIDFromToken(token)
		if err != nil {
			return err
		}
		if !policy.Allow(userID, c.Params("userId")) {
			return apperr.Authentication("User ID does not match token", nil)
		}
		identity.SetUserID(c, userID)
		return c.Next()
	}
}
