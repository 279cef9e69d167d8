package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/strollapp/stroll-backend/internal/config"
	"github.com/strollapp/stroll-backend/internal/dto"
	"github.com/strollapp/stroll-backend/internal/models"
	"github.com/strollapp/stroll-backend/internal/services"
	"github.com/strollapp/stroll-backend/internal/token"
)

const currentUserKey = "current_user"

// Protected enforces a valid signature on the bearer token. Missing,
// malformed and tampered tokens all get the same 401.
func Protected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthenticated(c)
		},
	})
}

// CurrentUser resolves the verified claims to an active user and enforces
// the token-version match. A stale version, an unknown id and a soft-deleted
// account all produce the same 401 as a bad token, so the response never
// reveals whether an account exists.
func CurrentUser(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return unauthenticated(c)
		}
		mapClaims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return unauthenticated(c)
		}

		claims, err := token.ClaimsFromMap(mapClaims)
		if err != nil {
			return unauthenticated(c)
		}

		user, err := users.AuthenticateClaims(c.UserContext(), claims.UserID, claims.TokenVersion)
		if err != nil {
			return unauthenticated(c)
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// UserFromContext returns the authenticated user set by CurrentUser.
func UserFromContext(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized",
	})
}
