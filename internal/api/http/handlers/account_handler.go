package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/craftlink/marketplace-api/internal/api/dto"
	"github.com/craftlink/marketplace-api/internal/auth"
	"github.com/craftlink/marketplace-api/internal/service"
	apperrors "github.com/craftlink/marketplace-api/pkg/util"
)

// AccountHandler exposes endpoints for the authenticated account.
type AccountHandler struct {
	auth *service.AuthService
}

// NewAccountHandler constructs handler.
func NewAccountHandler(authService *service.AuthService) *AccountHandler {
	return &AccountHandler{auth: authService}
}

// Me handles GET /auth/me.
func (h *AccountHandler) Me(c *fiber.Ctx) error {
	account, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	return c.JSON(fiber.Map{
		"user": dto.NewAccountResponse(account),
	})
}

// ProviderMe handles GET /providers/me.
func (h *AccountHandler) ProviderMe(c *fiber.Ctx) error {
	account, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	profile, err := h.auth.ProviderProfile(c.UserContext(), account.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewDomainError("NOT_FOUND", "provider profile not found", fiber.StatusNotFound)
		}
		return err
	}

	return c.JSON(fiber.Map{
		"user":    dto.NewAccountResponse(account),
		"profile": dto.NewProviderProfileResponse(profile),
	})
}
