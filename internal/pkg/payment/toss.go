package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goatpbn/paygate/internal/pkg/config"
	"github.com/goatpbn/paygate/internal/pkg/proxy"
)

// TossClient confirms card payments directly against the card-billing
// provider's tenant endpoint. It is used by the webhook reconciler; the
// storefront-facing toss routes go through the backend proxy instead.
type TossClient struct {
	BaseURL   string
	TenantKey string

	HTTPClient *http.Client
}

func NewTossClient(cfg *config.Config) *TossClient {
	return &TossClient{
		BaseURL:   strings.TrimRight(cfg.TossAPIBase, "/"),
		TenantKey: cfg.TossTenantKey,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ConfirmResult carries both the provider's raw status string (relayed to
// webhook callers) and the normalized status the rest of the gateway
// switches on.
type ConfirmResult struct {
	RawStatus string
	Status    ConfirmStatus
}

type confirmRequest struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
}

type confirmResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ConfirmPayment finalizes a payment authorization with the provider. The
// provider endpoint is idempotent: repeating the call with the same
// paymentKey/orderId/amount yields ALREADY_CONFIRMED instead of a second
// charge, so callers may retry freely.
func (c *TossClient) ConfirmPayment(ctx context.Context, ev PaymentEvent) (*ConfirmResult, error) {
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.BaseURL) == "" || strings.TrimSpace(c.TenantKey) == "" {
		return nil, errors.New("toss confirm endpoint is not configured")
	}

	payload, err := json.Marshal(confirmRequest{
		PaymentKey: ev.PaymentKey,
		OrderID:    ev.OrderID,
		Amount:     ev.Amount,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/confirm", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-Key", c.TenantKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("toss confirm request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var out confirmResponse
	_ = json.Unmarshal(body, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := out.Message
		if msg == "" {
			msg = out.Error
		}
		if msg == "" {
			msg = fmt.Sprintf("toss confirm failed: status=%d body=%s", resp.StatusCode, string(body))
		}
		return nil, errors.New(msg)
	}

	return &ConfirmResult{
		RawStatus: strings.TrimSpace(out.Status),
		Status:    NormalizeConfirmStatus(strings.TrimSpace(out.Status)),
	}, nil
}

// TossAdapter relays the storefront's card-billing lifecycle routes to the
// backend ledger. Responses on these paths are JSON-normalized so the
// storefront never has to deal with an unparseable upstream body.
type TossAdapter struct {
	Backend *proxy.Client
}

func NewTossAdapter(backend *proxy.Client) *TossAdapter {
	return &TossAdapter{Backend: backend}
}

func (a *TossAdapter) Invoke(ctx context.Context, action Action, id Identity, contentType string, body []byte) (*proxy.Result, error) {
	switch action {
	case ActionConfirmPayment:
		return a.Backend.Forward(ctx, http.MethodPost, "/api/payments/toss/confirm", id.forwardHeader(contentType, false), body)
	case ActionDowngrade:
		// Deferred to the next billing cycle, like every downgrade.
		return a.Backend.ForwardJSON(ctx, http.MethodPost, "/api/payments/toss/downgrade", id.forwardHeader(contentType, true), body)
	case ActionCancelSubscription:
		return a.Backend.ForwardJSON(ctx, http.MethodPost, "/api/payments/toss/cancel-subscription", id.forwardHeader(contentType, true), nil)
	default:
		return nil, fmt.Errorf("toss adapter: unsupported action %q", action)
	}
}

// BillingStatus reads the caller's recurring-billing state from the ledger.
func (a *TossAdapter) BillingStatus(ctx context.Context, id Identity) (*proxy.Result, error) {
	return a.Backend.ForwardJSON(ctx, http.MethodGet, "/api/payments/toss/billing/status", id.forwardHeader("", true), nil)
}
