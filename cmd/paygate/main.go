package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/goatpbn/paygate/app/controllers"
	"github.com/goatpbn/paygate/internal/pkg/config"
	"github.com/goatpbn/paygate/internal/pkg/env"
	"github.com/goatpbn/paygate/internal/pkg/payment"
	"github.com/goatpbn/paygate/internal/pkg/proxy"
	"github.com/goatpbn/paygate/internal/pkg/router"
)

func main() {
	app, cfg := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort))
	log.Fatal(err)
}

func NewApplication() (*fiber.App, *config.Config) {
	env.SetupEnvFile()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// All clients are built once here and injected; no component resolves
	// its own environment or lazily constructs a shared instance.
	backend := proxy.NewClient(cfg)
	paypal := payment.NewPayPalAdapter(backend)
	toss := payment.NewTossAdapter(backend)
	tossProvider := payment.NewTossClient(cfg)
	reconciler := payment.NewReconciler(tossProvider)

	ctrl := router.Controllers{
		Payments: controllers.NewPaymentController(paypal, toss),
		Webhooks: controllers.NewWebhookController(reconciler, paypal, cfg.TossWebhookSecret),
		Refunds:  controllers.NewRefundController(backend),
		Accounts: controllers.NewAccountController(backend),
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName:   "paygate",
		BodyLimit: 1 << 20, // webhook and lifecycle payloads are small
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			cfg.MetricsUser: cfg.MetricsPass,
		},
	}), monitor.New())

	// SWAGGER / OPENAPI
	if basePath := findDocsBasePath(); basePath != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/docs/api/",
			FilePath: basePath + "public/docs/v1/openapi.yml",
			Path:     "v1",
		}))
	}

	// ROUTER
	router.InstallRouter(app, cfg, ctrl)

	return app, cfg
}

func findDocsBasePath() string {
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/paygate to project root
		"../../../", // Fallback
	}
	for _, path := range basePaths {
		if _, err := os.Stat(path + "public/docs/v1/openapi.yml"); err == nil {
			return path
		}
	}
	return ""
}
