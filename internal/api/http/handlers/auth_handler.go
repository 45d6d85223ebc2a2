package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// AuthHandler issues and clears the session cookie.
type AuthHandler struct {
	tokens *auth.TokenManager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// IssueToken POST /jwt. Signs the posted identity claim and delivers it in a
// guarded cookie so the browser can send it cross-origin.
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	var req dto.IssueTokenRequest
	if err := dto.DecodeStrict(c.Body(), &req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	token, expiresAt, err := h.tokens.Issue(req.Email)
	if err != nil {
		return err
	}

	c.Cookie(sessionCookie(token, expiresAt))
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Logout POST /logout. Expires the cookie client-side; nothing is stored
// server-side to revoke.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(sessionCookie("", time.Now().Add(-time.Hour)))
	return c.JSON(dto.SuccessResponse{Success: true})
}

func sessionCookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	}
}
