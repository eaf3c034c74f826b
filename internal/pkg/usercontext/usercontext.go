package usercontext

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goatpbn/paygate/internal/pkg/payment"
)

const contextKey = "USER_CONTEXT"

// UserContext is the request-scoped caller identity. Identity is supplied by
// the upstream session layer as headers; the gateway trusts it as handed in
// and the backend ledger makes the real authorization decision.
type UserContext struct {
	UserID        string `json:"user_id"`
	Authorization string `json:"-"`
}

// GetUserContext retrieves the user context from fiber context.
// Returns an anonymous context if none is set.
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx := c.Locals(contextKey); ctx != nil {
		return ctx.(UserContext)
	}
	return UserContext{}
}

// SetUserContext stores the identity for the rest of the request chain.
func SetUserContext(c *fiber.Ctx, ctx UserContext) {
	c.Locals(contextKey, ctx)
}

// Identity converts the request identity into the payment-layer contract.
func (u UserContext) Identity() payment.Identity {
	return payment.Identity{UserID: u.UserID, Authorization: u.Authorization}
}
