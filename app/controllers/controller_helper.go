package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/goatpbn/paygate/internal/pkg/proxy"
)

const outboundTimeout = 15 // seconds, matches the provider client timeouts

// respondProxy relays an upstream result: status preserved, the upstream's
// Content-Type (proxy defaults it to application/json) and no-store caching.
// Responses on these paths are keyed to the caller, so public cacheability
// is opt-in via respondCatalog.
func respondProxy(c *fiber.Ctx, res *proxy.Result) error {
	c.Set(fiber.HeaderContentType, res.ContentType)
	c.Set(fiber.HeaderCacheControl, proxy.CacheControl(c.Method(), false))
	return c.Status(res.Status).Send(res.Body)
}

// respondCatalog relays a public catalog read, briefly cacheable on GET.
func respondCatalog(c *fiber.Ctx, res *proxy.Result) error {
	c.Set(fiber.HeaderContentType, res.ContentType)
	c.Set(fiber.HeaderCacheControl, proxy.CacheControl(c.Method(), true))
	return c.Status(res.Status).Send(res.Body)
}

// respondProxyError maps forwarding failures onto the error taxonomy: a
// missing backend address is a configuration problem reported generically,
// anything else is an upstream failure whose message is included for
// operator diagnosis.
func respondProxyError(c *fiber.Ctx, err error) error {
	if errors.Is(err, proxy.ErrNotConfigured) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "API url not configured"})
	}
	log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
