package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/goatpbn/paygate/internal/pkg/payment"
	"github.com/goatpbn/paygate/internal/pkg/usercontext"
)

// PaymentController coordinates the subscription lifecycle: each handler
// sequences identity extraction, the matching provider adapter and the
// backend forward, and relays the ledger's verdict verbatim. The controller
// holds no state beyond its injected clients; the backend ledger is the
// source of truth and may reject impossible transitions, which are passed
// through rather than reinterpreted.
type PaymentController struct {
	PayPal *payment.PayPalAdapter
	Toss   *payment.TossAdapter
}

func NewPaymentController(paypal *payment.PayPalAdapter, toss *payment.TossAdapter) *PaymentController {
	return &PaymentController{PayPal: paypal, Toss: toss}
}

func (pc *PaymentController) HandlePayPalPlans(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), outboundTimeout*time.Second)
	defer cancel()

	res, err := pc.PayPal.Plans(ctx)
	if err != nil {
		return respondProxyError(c, err)
	}
	return respondCatalog(c, res)
}

func (pc *PaymentController) HandlePayPalCreateSubscription(c *fiber.Ctx) error {
	return pc.invokePayPal(c, payment.ActionCreateSubscription)
}

func (pc *PaymentController) HandlePayPalConfirm(c *fiber.Ctx) error {
	return pc.invokePayPal(c, payment.ActionConfirmPayment)
}

// HandlePayPalUpgrade applies the plan change with immediate proration.
func (pc *PaymentController) HandlePayPalUpgrade(c *fiber.Ctx) error {
	return pc.invokePayPal(c, payment.ActionUpgrade)
}

// HandlePayPalDowngrade schedules the plan change for the next billing cycle.
func (pc *PaymentController) HandlePayPalDowngrade(c *fiber.Ctx) error {
	return pc.invokePayPal(c, payment.ActionDowngrade)
}

func (pc *PaymentController) HandlePayPalCancelDowngrade(c *fiber.Ctx) error {
	return pc.invokePayPal(c, payment.ActionCancelDowngrade)
}

func (pc *PaymentController) HandlePayPalCancelSubscription(c *fiber.Ctx) error {
	return pc.invokePayPal(c, payment.ActionCancelSubscription)
}

func (pc *PaymentController) invokePayPal(c *fiber.Ctx, action payment.Action) error {
	ctx, cancel := context.WithTimeout(context.Background(), outboundTimeout*time.Second)
	defer cancel()

	identity := usercontext.GetUserContext(c).Identity()
	body := append([]byte(nil), c.Body()...)

	res, err := pc.PayPal.Invoke(ctx, action, identity, c.Get(fiber.HeaderContentType), body)
	if err != nil {
		return respondProxyError(c, err)
	}
	return respondProxy(c, res)
}

func (pc *PaymentController) HandleTossConfirm(c *fiber.Ctx) error {
	return pc.invokeToss(c, payment.ActionConfirmPayment)
}

func (pc *PaymentController) HandleTossDowngrade(c *fiber.Ctx) error {
	return pc.invokeToss(c, payment.ActionDowngrade)
}

func (pc *PaymentController) HandleTossCancelSubscription(c *fiber.Ctx) error {
	return pc.invokeToss(c, payment.ActionCancelSubscription)
}

func (pc *PaymentController) HandleTossBillingStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), outboundTimeout*time.Second)
	defer cancel()

	identity := usercontext.GetUserContext(c).Identity()
	res, err := pc.Toss.BillingStatus(ctx, identity)
	if err != nil {
		return respondProxyError(c, err)
	}
	return respondProxy(c, res)
}

func (pc *PaymentController) invokeToss(c *fiber.Ctx, action payment.Action) error {
	ctx, cancel := context.WithTimeout(context.Background(), outboundTimeout*time.Second)
	defer cancel()

	identity := usercontext.GetUserContext(c).Identity()
	body := append([]byte(nil), c.Body()...)

	res, err := pc.Toss.Invoke(ctx, action, identity, c.Get(fiber.HeaderContentType), body)
	if err != nil {
		return respondProxyError(c, err)
	}
	return respondProxy(c, res)
}
