package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/goatpbn/paygate/internal/pkg/proxy"
	"github.com/goatpbn/paygate/internal/pkg/usercontext"
)

// RefundController proxies refund and coupon operations to the ledger.
// Approval is intended for privileged callers; the ledger checks the
// forwarded identity and rejects everyone else.
type RefundController struct {
	Backend *proxy.Client
}

func NewRefundController(backend *proxy.Client) *RefundController {
	return &RefundController{Backend: backend}
}

func (rc *RefundController) HandleRefundRequest(c *fiber.Ctx) error {
	return rc.forward(c, "/api/refunds/request")
}

func (rc *RefundController) HandleRefundApprove(c *fiber.Ctx) error {
	return rc.forward(c, "/api/refunds/approve")
}

func (rc *RefundController) HandleCouponRedeem(c *fiber.Ctx) error {
	return rc.forward(c, "/api/coupons/redeem")
}

func (rc *RefundController) forward(c *fiber.Ctx, path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), outboundTimeout*time.Second)
	defer cancel()

	user := usercontext.GetUserContext(c)
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("x-user-id", user.UserID)

	res, err := rc.Backend.ForwardJSON(ctx, fiber.MethodPost, path, header, append([]byte(nil), c.Body()...))
	if err != nil {
		return respondProxyError(c, err)
	}
	return respondProxy(c, res)
}
