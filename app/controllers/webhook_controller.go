package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/goatpbn/paygate/internal/pkg/payment"
)

// WebhookController receives server-to-server provider notifications. These
// routes bypass the origin gate by design: providers are not browsers.
type WebhookController struct {
	Reconciler *payment.Reconciler
	PayPal     *payment.PayPalAdapter

	// TossWebhookSecret enables signature verification when set. Unsigned
	// deliveries stay accepted for tenants without signing enabled.
	TossWebhookSecret string
}

func NewWebhookController(reconciler *payment.Reconciler, paypal *payment.PayPalAdapter, tossWebhookSecret string) *WebhookController {
	return &WebhookController{
		Reconciler:        reconciler,
		PayPal:            paypal,
		TossWebhookSecret: tossWebhookSecret,
	}
}

// HandleTossWebhook drives the reconciler for one card-billing delivery.
// Each delivery is handled to completion before responding; there is no
// queue. Redelivery safety comes from the downstream confirm call answering
// ALREADY_CONFIRMED, not from any local dedup store.
func (wc *WebhookController) HandleTossWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)

	if wc.TossWebhookSecret != "" {
		signature := strings.TrimSpace(c.Get("X-Toss-Signature"))
		if !payment.VerifyTossWebhookSignature(rawBody, signature, wc.TossWebhookSecret) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"received": false, "error": "invalid signature"})
		}
	}

	deliveryID := strings.TrimSpace(c.Get("X-Toss-Delivery-Id"))
	if deliveryID == "" {
		// Correlation id for the logs only; the reconciler never dedups on it.
		deliveryID = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(context.Background(), outboundTimeout*time.Second)
	defer cancel()

	outcome := wc.Reconciler.Handle(ctx, deliveryID, rawBody)

	body := fiber.Map{"received": outcome.Received}
	switch {
	case outcome.Skipped:
		body["skipped"] = true
	case outcome.Error != "":
		body["error"] = outcome.Error
	default:
		body["confirmed"] = outcome.Confirmed
		body["status"] = outcome.Status
	}
	return c.Status(outcome.HTTPStatus).JSON(body)
}

// HandlePayPalWebhook relays the delivery to the backend with the original
// headers and body untouched so the backend can verify the provider's
// signature itself.
func (wc *WebhookController) HandlePayPalWebhook(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), outboundTimeout*time.Second)
	defer cancel()

	header := http.Header{}
	for key, values := range c.GetReqHeaders() {
		if skipForwardHeader(key) {
			continue
		}
		for _, v := range values {
			header.Add(key, v)
		}
	}

	res, err := wc.PayPal.RelayWebhook(ctx, header, append([]byte(nil), c.BodyRaw()...))
	if err != nil {
		return respondProxyError(c, err)
	}
	return respondProxy(c, res)
}

// skipForwardHeader filters connection-scoped headers that must not travel
// to the backend.
func skipForwardHeader(key string) bool {
	switch strings.ToLower(key) {
	case "host", "connection", "content-length", "accept-encoding":
		return true
	default:
		return false
	}
}
