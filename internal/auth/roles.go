package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/craftlink/marketplace-api/internal/domain"
	apperrors "github.com/craftlink/marketplace-api/pkg/util"
)

// RequireProvider ensures the authenticated account holds the provider role.
func RequireProvider() fiber.Handler {
	return func(c *fiber.Ctx) error {
		account, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if account.Role != domain.RoleProvider {
			return apperrors.NewForbidden("provider role required")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures a principal is present.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
