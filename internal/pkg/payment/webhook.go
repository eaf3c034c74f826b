package payment

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
)

const (
	// webhookEventPaymentStatusChanged is the only event type that triggers
	// a confirm call; everything else is acknowledged and skipped so the
	// provider stops redelivering types we intentionally ignore.
	webhookEventPaymentStatusChanged = "PAYMENT_STATUS_CHANGED"

	// webhookStatusDone is the provider's "money moved" payload status.
	webhookStatusDone = "DONE"
)

// Confirmer finalizes a payment with the card-billing provider.
type Confirmer interface {
	ConfirmPayment(ctx context.Context, ev PaymentEvent) (*ConfirmResult, error)
}

// Reconciler turns asynchronous provider notifications into idempotent
// confirm calls. It keeps no delivery ledger of its own: redelivery safety
// comes entirely from the confirm endpoint answering ALREADY_CONFIRMED on
// repeats, so concurrent deliveries for the same orderId across instances
// are fine.
type Reconciler struct {
	Confirmer Confirmer
}

func NewReconciler(confirmer Confirmer) *Reconciler {
	return &Reconciler{Confirmer: confirmer}
}

// Outcome is the reconciler's verdict for one delivery, rendered to JSON by
// the webhook controller.
type Outcome struct {
	HTTPStatus int
	Received   bool
	Skipped    bool
	Confirmed  bool
	// Status is the provider's raw status string, or UNKNOWN when the
	// provider returned none. Only set on the confirm path.
	Status string
	Error  string
}

type webhookEnvelope struct {
	EventType string      `json:"eventType"`
	Data      webhookData `json:"data"`
}

type webhookData struct {
	Status     string `json:"status"`
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	// The provider has shipped the amount under two field names across
	// payload versions. Precedence: totalAmount, then amount.
	TotalAmount *float64 `json:"totalAmount"`
	Amount      *float64 `json:"amount"`
}

// readAmount applies the documented field precedence: totalAmount wins when
// present, amount is the fallback. The bool is false when neither field
// holds a positive finite number.
func (d webhookData) readAmount() (int64, bool) {
	if d.TotalAmount != nil {
		return amountFromNumber(*d.TotalAmount)
	}
	if d.Amount != nil {
		return amountFromNumber(*d.Amount)
	}
	return 0, false
}

// Handle processes one webhook delivery to completion before returning.
// deliveryID is only used for log correlation.
func (r *Reconciler) Handle(ctx context.Context, deliveryID string, rawBody []byte) Outcome {
	var envelope webhookEnvelope
	if err := json.Unmarshal(rawBody, &envelope); err != nil {
		// Malformed deliveries are possibly transient; a 400 tells the
		// provider to retry.
		return Outcome{
			HTTPStatus: http.StatusBadRequest,
			Received:   false,
			Error:      "unable to parse webhook payload",
		}
	}

	if envelope.EventType != webhookEventPaymentStatusChanged {
		return Outcome{HTTPStatus: http.StatusOK, Received: true, Skipped: true}
	}
	if envelope.Data.Status != webhookStatusDone {
		return Outcome{HTTPStatus: http.StatusOK, Received: true, Skipped: true}
	}

	amount, ok := envelope.Data.readAmount()
	ev := PaymentEvent{
		PaymentKey: envelope.Data.PaymentKey,
		OrderID:    envelope.Data.OrderID,
		Amount:     amount,
	}
	if !ok || ev.Validate() != nil {
		return Outcome{
			HTTPStatus: http.StatusBadRequest,
			Received:   false,
			Error:      "required payment fields are missing or invalid",
		}
	}

	result, err := r.Confirmer.ConfirmPayment(ctx, ev)
	if err != nil {
		log.Printf("webhook %s: confirm failed for order %s: %v", deliveryID, ev.OrderID, err)
		return Outcome{
			HTTPStatus: http.StatusInternalServerError,
			Received:   false,
			Error:      err.Error(),
		}
	}

	status := result.RawStatus
	if status == "" {
		status = "UNKNOWN"
	}
	return Outcome{
		HTTPStatus: http.StatusOK,
		Received:   true,
		Confirmed:  result.Status.Success(),
		Status:     status,
	}
}
