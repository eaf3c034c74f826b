package router

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	redisstorage "github.com/gofiber/storage/redis"

	"github.com/goatpbn/paygate/internal/pkg/config"
	"github.com/goatpbn/paygate/internal/pkg/corspolicy"
)

type ApiRouter struct {
	cfg  *config.Config
	ctrl Controllers
}

func NewApiRouter(cfg *config.Config, ctrl Controllers) *ApiRouter {
	return &ApiRouter{cfg: cfg, ctrl: ctrl}
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	// Rate-limit state lives in redis so throttling stays consistent across
	// the stateless gateway instances.
	cachePort, err := strconv.Atoi(h.cfg.CachePort)
	if err != nil {
		cachePort = 6379
	}
	api := app.Group("/api", limiter.New(limiter.Config{
		Storage: redisstorage.New(redisstorage.Config{
			Host:     h.cfg.CacheHost,
			Port:     cachePort,
			Database: 1,
			Reset:    false,
		}),
	}))

	// The origin gate answers OPTIONS preflights itself and injects the
	// access-control headers on actual responses; it never rejects a
	// request (the browser enforces the block). Routes registered before
	// the gated group stay outside the gate: webhooks are server-to-server
	// and catalog reads are same-origin.
	gate := corspolicy.Middleware(h.cfg.AllowedOrigins)

	payments := api.Group("/payments")

	paypal := payments.Group("/paypal")
	paypal.Get("/plans", h.ctrl.Payments.HandlePayPalPlans)
	paypal.Post("/webhook", h.ctrl.Webhooks.HandlePayPalWebhook)
	paypalGated := paypal.Group("", gate)
	paypalGated.Post("/create-subscription", h.ctrl.Payments.HandlePayPalCreateSubscription)
	paypalGated.Post("/confirm", h.ctrl.Payments.HandlePayPalConfirm)
	paypalGated.Patch("/upgrade", h.ctrl.Payments.HandlePayPalUpgrade)
	paypalGated.Post("/downgrade", h.ctrl.Payments.HandlePayPalDowngrade)
	paypalGated.Post("/cancel-downgrade", h.ctrl.Payments.HandlePayPalCancelDowngrade)
	paypalGated.Post("/cancel-subscription", h.ctrl.Payments.HandlePayPalCancelSubscription)

	toss := payments.Group("/toss")
	toss.Post("/webhook", h.ctrl.Webhooks.HandleTossWebhook)
	toss.Get("/billing/status", h.ctrl.Payments.HandleTossBillingStatus)
	tossGated := toss.Group("", gate)
	tossGated.Post("/confirm", h.ctrl.Payments.HandleTossConfirm)
	tossGated.Post("/downgrade", h.ctrl.Payments.HandleTossDowngrade)
	tossGated.Post("/cancel-subscription", h.ctrl.Payments.HandleTossCancelSubscription)

	refunds := api.Group("/refunds", gate)
	refunds.Post("/request", h.ctrl.Refunds.HandleRefundRequest)
	refunds.Post("/approve", h.ctrl.Refunds.HandleRefundApprove)

	coupons := api.Group("/coupons", gate)
	coupons.Post("/redeem", h.ctrl.Refunds.HandleCouponRedeem)

	api.Get("/invoices", h.ctrl.Accounts.HandleInvoices)

	user := api.Group("/user", gate)
	user.Get("/settings", h.ctrl.Accounts.HandleUserSettings)
	user.Post("/settings", h.ctrl.Accounts.HandleUserSettings)
	user.Post("/settings/timezone", h.ctrl.Accounts.HandleUserTimezone)
}
