package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goatpbn/paygate/app/controllers"
	"github.com/goatpbn/paygate/internal/pkg/config"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

// Controllers bundles the explicitly constructed handler sets the routers
// wire up. Everything is built once in main and injected; no router reaches
// for a global.
type Controllers struct {
	Payments *controllers.PaymentController
	Webhooks *controllers.WebhookController
	Refunds  *controllers.RefundController
	Accounts *controllers.AccountController
}

func InstallRouter(app *fiber.App, cfg *config.Config, ctrl Controllers) {
	// HttpRouter first: it registers the global identity middleware the API
	// routes depend on.
	setup(app, NewHttpRouter(), NewApiRouter(cfg, ctrl))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
