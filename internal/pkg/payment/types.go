// Package payment holds the provider adapters and the webhook reconciler:
// the card-billing provider ("toss") and the recurring-billing provider
// ("paypal") are normalized into one internal subscription-action contract,
// while the authoritative subscription/ledger state stays in the backend.
package payment

import (
	"errors"
	"fmt"
	"math"
)

const (
	ProviderToss   = "toss"
	ProviderPayPal = "paypal"
)

// Action is a subscription-lifecycle operation requested by the storefront.
type Action string

const (
	ActionCreateSubscription Action = "create-subscription"
	ActionConfirmPayment     Action = "confirm-payment"
	ActionCancelSubscription Action = "cancel-subscription"
	// Upgrade applies proration immediately; Downgrade takes effect at the
	// next billing cycle. The asymmetry is a fixed business rule, not a
	// caller option.
	ActionUpgrade         Action = "upgrade"
	ActionDowngrade       Action = "downgrade"
	ActionCancelDowngrade Action = "cancel-downgrade"
)

// ErrInvalidPaymentEvent marks malformed or incomplete payment fields.
// Callers map it to HTTP 400 so providers redeliver.
var ErrInvalidPaymentEvent = errors.New("invalid payment event")

// PaymentEvent is one attempt to move money. Amount is in the minor
// currency unit. The gateway constructs these per request and never stores
// them.
type PaymentEvent struct {
	PaymentKey string
	OrderID    string
	Amount     int64
}

// Validate rejects events that must never reach a confirm call.
func (e PaymentEvent) Validate() error {
	if e.PaymentKey == "" {
		return fmt.Errorf("%w: missing paymentKey", ErrInvalidPaymentEvent)
	}
	if e.OrderID == "" {
		return fmt.Errorf("%w: missing orderId", ErrInvalidPaymentEvent)
	}
	if e.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidPaymentEvent)
	}
	return nil
}

// ConfirmStatus is the normalized outcome vocabulary for confirm calls.
type ConfirmStatus string

const (
	StatusConfirmed        ConfirmStatus = "confirmed"
	StatusAlreadyConfirmed ConfirmStatus = "already-confirmed"
	StatusDeclined         ConfirmStatus = "declined"
	StatusUnknown          ConfirmStatus = "unknown"
)

// Success reports whether a confirm outcome counts as settled. An
// already-confirmed repeat is success, not an error; that tolerance is what
// makes webhook redelivery safe without a dedup store.
func (s ConfirmStatus) Success() bool {
	return s == StatusConfirmed || s == StatusAlreadyConfirmed
}

// NormalizeConfirmStatus maps the provider status vocabulary onto the
// internal enum. Unrecognized values become unknown rather than an error so
// a new provider code never breaks the response path.
func NormalizeConfirmStatus(providerStatus string) ConfirmStatus {
	switch providerStatus {
	case "CONFIRMED", "DONE":
		return StatusConfirmed
	case "ALREADY_CONFIRMED":
		return StatusAlreadyConfirmed
	case "DECLINED", "REJECTED", "REJECT_CARD_COMPANY", "EXCEED_MAX_AMOUNT":
		return StatusDeclined
	default:
		return StatusUnknown
	}
}

// amountFromNumber converts a JSON number to a minor-unit amount, rejecting
// NaN, infinities and non-positive values.
func amountFromNumber(v float64) (int64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return int64(v), true
}
