package payment

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goatpbn/paygate/internal/pkg/proxy"
)

// PayPalAdapter maps recurring-billing lifecycle actions onto the backend
// ledger's paypal endpoints. The adapter decides verb and path; the business
// asymmetry is fixed here: upgrades are PATCHed with immediate proration,
// downgrades are POSTed and deferred to the next billing cycle.
type PayPalAdapter struct {
	Backend *proxy.Client
}

func NewPayPalAdapter(backend *proxy.Client) *PayPalAdapter {
	return &PayPalAdapter{Backend: backend}
}

// Plans fetches the subscription plan catalog. No identity is attached;
// the catalog is public and briefly cacheable.
func (a *PayPalAdapter) Plans(ctx context.Context) (*proxy.Result, error) {
	return a.Backend.Forward(ctx, http.MethodGet, "/api/payments/paypal/plans", nil, nil)
}

// Invoke executes one lifecycle action against the backend, forwarding the
// storefront body and its content type verbatim.
func (a *PayPalAdapter) Invoke(ctx context.Context, action Action, id Identity, contentType string, body []byte) (*proxy.Result, error) {
	switch action {
	case ActionCreateSubscription:
		return a.Backend.Forward(ctx, http.MethodPost, "/api/payments/paypal/create-subscription", id.forwardHeader(contentType, false), body)
	case ActionConfirmPayment:
		return a.Backend.Forward(ctx, http.MethodPost, "/api/payments/paypal/confirm", id.forwardHeader(contentType, false), body)
	case ActionUpgrade:
		// Prorated immediately.
		return a.Backend.Forward(ctx, http.MethodPatch, "/api/payments/paypal/upgrade", id.forwardHeader(contentType, true), body)
	case ActionDowngrade:
		// Takes effect at the next billing cycle.
		return a.Backend.Forward(ctx, http.MethodPost, "/api/payments/paypal/downgrade", id.forwardHeader(contentType, true), body)
	case ActionCancelDowngrade:
		return a.Backend.Forward(ctx, http.MethodPost, "/api/payments/paypal/cancel-downgrade", id.forwardHeader(contentType, false), body)
	case ActionCancelSubscription:
		return a.Backend.Forward(ctx, http.MethodPost, "/api/payments/paypal/cancel-subscription", id.forwardHeader(contentType, false), body)
	default:
		return nil, fmt.Errorf("paypal adapter: unsupported action %q", action)
	}
}

// RelayWebhook passes a provider webhook through to the backend with the
// original headers and body untouched so the backend can verify the
// provider signature itself.
func (a *PayPalAdapter) RelayWebhook(ctx context.Context, header http.Header, body []byte) (*proxy.Result, error) {
	return a.Backend.Forward(ctx, http.MethodPost, "/api/payments/paypal/webhook", header, body)
}
