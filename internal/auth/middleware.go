package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// CookieName is the guarded cookie carrying the session credential.
const CookieName = "token"

const identityKey = "auth_identity"

// OwnerGate verifies the cookie credential and binds it to the identity whose
// data the route exposes. Routes opt in at registration; scope is never
// inferred from the request.
type OwnerGate struct {
	tokens *TokenManager
}

// NewOwnerGate constructs the gate.
func NewOwnerGate(tokens *TokenManager) *OwnerGate {
	return &OwnerGate{tokens: tokens}
}

// RequireOwner enforces that the verified identity equals the value of the
// named query parameter. A valid credential alone is not sufficient: the
// credential's email must match the identity being requested.
func (g *OwnerGate) RequireOwner(queryParam string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(CookieName)
		if tokenStr == "" {
			return apperrors.NewUnauthorized()
		}

		email, err := g.tokens.Verify(tokenStr)
		if err != nil {
			return apperrors.NewUnauthorized()
		}

		if email != c.Query(queryParam) {
			return apperrors.NewForbidden()
		}

		c.Locals(identityKey, email)
		return c.Next()
	}
}

// IdentityFromContext retrieves the verified identity set by the gate.
func IdentityFromContext(c *fiber.Ctx) (string, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return "", false
	}
	email, ok := val.(string)
	return email, ok
}
