package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/goatpbn/paygate/internal/pkg/usercontext"
)

// UserContextMiddleware extracts the header-supplied identity for every
// request. There is no session store here: the storefront's session layer
// resolves the user and forwards the id as x-user-id, which the gateway
// passes through opaquely.
func UserContextMiddleware(c *fiber.Ctx) error {
	usercontext.SetUserContext(c, usercontext.UserContext{
		UserID:        strings.TrimSpace(c.Get("x-user-id")),
		Authorization: strings.TrimSpace(c.Get(fiber.HeaderAuthorization)),
	})
	return c.Next()
}
