package controllers

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/goatpbn/paygate/internal/pkg/proxy"
	"github.com/goatpbn/paygate/internal/pkg/usercontext"
)

// AccountController proxies account-adjacent reads and settings writes.
type AccountController struct {
	Backend *proxy.Client
}

func NewAccountController(backend *proxy.Client) *AccountController {
	return &AccountController{Backend: backend}
}

// HandleInvoices lists the caller's invoices. A user_id query parameter may
// override the identity header (used by the dashboard's admin views); the
// ledger authorizes the combination.
func (ac *AccountController) HandleInvoices(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), outboundTimeout*time.Second)
	defer cancel()

	uid := c.Query("user_id")
	if uid == "" {
		uid = usercontext.GetUserContext(c).UserID
	}

	path := "/api/invoices"
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	if uid != "" {
		path += "?user_id=" + url.QueryEscape(uid)
		header.Set("x-user-id", uid)
	}

	res, err := ac.Backend.Forward(ctx, fiber.MethodGet, path, header, nil)
	if err != nil {
		return respondProxyError(c, err)
	}
	return respondProxy(c, res)
}

func (ac *AccountController) HandleUserSettings(c *fiber.Ctx) error {
	return ac.forwardSettings(c, "/api/user/settings")
}

func (ac *AccountController) HandleUserTimezone(c *fiber.Ctx) error {
	return ac.forwardSettings(c, "/api/user/settings/timezone")
}

func (ac *AccountController) forwardSettings(c *fiber.Ctx, path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), outboundTimeout*time.Second)
	defer cancel()

	user := usercontext.GetUserContext(c)
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	if user.UserID != "" {
		header.Set("x-user-id", user.UserID)
	}

	res, err := ac.Backend.Forward(ctx, c.Method(), path, header, append([]byte(nil), c.Body()...))
	if err != nil {
		return respondProxyError(c, err)
	}
	return respondProxy(c, res)
}
