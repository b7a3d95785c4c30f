package middleware

import (
	"errors"
	"strings"

	"bank-loan-simulator/internal/adapters/http/handlers"
	"bank-loan-simulator/internal/core/domain"
	"bank-loan-simulator/internal/pkg/jwt"
	"bank-loan-simulator/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TokenValidator verifies access tokens
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// AuthMiddleware requires a valid bearer token and stores the caller in locals
func AuthMiddleware(tokens TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return response.Unauthorized(c, "Access token required")
		}
		accessToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := tokens.ValidateToken(accessToken)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		id := claims.Identity()
		c.Locals(handlers.LocalUserID, id.UserID)
		c.Locals(handlers.LocalEmail, id.Email)
		c.Locals(handlers.LocalFullName, id.FullName)
		c.Locals(handlers.LocalRole, id.Role)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(handlers.LocalRole).(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowed := range allowedRoles {
			if role == string(allowed) {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the Admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}
