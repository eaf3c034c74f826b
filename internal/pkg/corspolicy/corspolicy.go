package corspolicy

import (
	"github.com/gofiber/fiber/v2"
)

// DefaultMethods covers the storefront's mutating routes plus preflight.
const DefaultMethods = "POST, PATCH, OPTIONS"

// allowedHeaders must include the identity header the storefront attaches.
// Both spellings are listed because some browsers echo the lowercase form in
// Access-Control-Request-Headers.
const allowedHeaders = "Content-Type, Authorization, X-User-Id, x-user-id"

// AccessDecision is the computed answer for one request origin. When Allowed
// is false Headers is empty and the caller must not attach any CORS header;
// the browser enforces the actual block.
type AccessDecision struct {
	Allowed bool
	Headers map[string]string
}

// Decide checks the request origin against the allow-list. Matching is exact
// and case-sensitive; an absent origin fails closed. An allowed origin is
// echoed back verbatim, never widened to a wildcard, so credentialed
// requests keep working, and Vary: Origin keeps shared caches from leaking
// one origin's response to another.
func Decide(origin string, allowList []string) AccessDecision {
	if origin == "" {
		return AccessDecision{}
	}
	for _, allowed := range allowList {
		if origin == allowed {
			return AccessDecision{
				Allowed: true,
				Headers: map[string]string{
					"Access-Control-Allow-Origin":      origin,
					"Access-Control-Allow-Methods":     DefaultMethods,
					"Access-Control-Allow-Headers":     allowedHeaders,
					"Access-Control-Allow-Credentials": "true",
					"Vary":                             "Origin",
				},
			}
		}
	}
	return AccessDecision{}
}

// Apply attaches the decision headers to the response. A negative decision
// is a no-op, not an error.
func Apply(c *fiber.Ctx, decision AccessDecision) {
	for k, v := range decision.Headers {
		c.Set(k, v)
	}
}

// Middleware guards a group of storefront-facing routes: preflights are
// answered with 204 and only the decision headers, everything else runs the
// route and gets the decision headers injected on the way out. The gate
// never rejects a request itself.
func Middleware(allowList []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := Decide(c.Get(fiber.HeaderOrigin), allowList)
		if c.Method() == fiber.MethodOptions {
			Apply(c, decision)
			return c.SendStatus(fiber.StatusNoContent)
		}
		if err := c.Next(); err != nil {
			return err
		}
		Apply(c, decision)
		return nil
	}
}
