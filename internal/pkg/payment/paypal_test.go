package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goatpbn/paygate/internal/pkg/proxy"
)

func recordingBackend(t *testing.T) (*httptest.Server, *http.Request) {
	t.Helper()
	var got http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = *r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func newBackendClient(baseURL string) *proxy.Client {
	return &proxy.Client{BaseURL: baseURL, HTTPClient: &http.Client{Timeout: 5 * time.Second}}
}

func TestPayPalAdapterActionMapping(t *testing.T) {
	tests := []struct {
		action     Action
		wantMethod string
		wantPath   string
	}{
		{ActionCreateSubscription, http.MethodPost, "/api/payments/paypal/create-subscription"},
		{ActionConfirmPayment, http.MethodPost, "/api/payments/paypal/confirm"},
		{ActionUpgrade, http.MethodPatch, "/api/payments/paypal/upgrade"},
		{ActionDowngrade, http.MethodPost, "/api/payments/paypal/downgrade"},
		{ActionCancelDowngrade, http.MethodPost, "/api/payments/paypal/cancel-downgrade"},
		{ActionCancelSubscription, http.MethodPost, "/api/payments/paypal/cancel-subscription"},
	}

	for _, tt := range tests {
		srv, got := recordingBackend(t)
		a := NewPayPalAdapter(newBackendClient(srv.URL))

		_, err := a.Invoke(context.Background(), tt.action, Identity{UserID: "u1"}, "application/json", []byte(`{"plan":"pro"}`))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.action, err)
		}
		if got.Method != tt.wantMethod {
			t.Fatalf("%s: method = %s, want %s", tt.action, got.Method, tt.wantMethod)
		}
		if got.URL.Path != tt.wantPath {
			t.Fatalf("%s: path = %s, want %s", tt.action, got.URL.Path, tt.wantPath)
		}
		if got.Header.Get("x-user-id") != "u1" {
			t.Fatalf("%s: identity header missing", tt.action)
		}
	}
}

func TestPayPalAdapterUnsupportedAction(t *testing.T) {
	a := NewPayPalAdapter(newBackendClient("http://localhost:0"))
	if _, err := a.Invoke(context.Background(), Action("refund"), Identity{}, "", nil); err == nil {
		t.Fatalf("expected unsupported-action error")
	}
}

func TestPayPalAdapterDoesNotFabricateIdentity(t *testing.T) {
	srv, got := recordingBackend(t)
	a := NewPayPalAdapter(newBackendClient(srv.URL))

	// Routes with conditional identity: absent user id means no header.
	if _, err := a.Invoke(context.Background(), ActionCreateSubscription, Identity{}, "", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, present := got.Header["X-User-Id"]; present {
		t.Fatalf("empty identity must not be fabricated into a header")
	}

	// Upgrade forwards the header unconditionally, empty value included,
	// and the ledger decides authorization.
	if _, err := a.Invoke(context.Background(), ActionUpgrade, Identity{}, "", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, present := got.Header["X-User-Id"]; !present {
		t.Fatalf("upgrade must always carry the identity header")
	}
}

func TestPayPalAdapterForwardsInboundContentType(t *testing.T) {
	srv, got := recordingBackend(t)
	a := NewPayPalAdapter(newBackendClient(srv.URL))

	// The storefront's content type travels as-is.
	if _, err := a.Invoke(context.Background(), ActionUpgrade, Identity{UserID: "u1"}, "application/json; charset=utf-8", []byte(`{"plan":"pro"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Header.Get("Content-Type") != "application/json; charset=utf-8" {
		t.Fatalf("content type not forwarded, got %q", got.Header.Get("Content-Type"))
	}

	// Absent inbound content type falls back to JSON.
	if _, err := a.Invoke(context.Background(), ActionDowngrade, Identity{UserID: "u1"}, "", []byte(`{"plan":"basic"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Header.Get("Content-Type") != "application/json" {
		t.Fatalf("default content type missing, got %q", got.Header.Get("Content-Type"))
	}
}

func TestTossAdapterActionMapping(t *testing.T) {
	tests := []struct {
		action   Action
		wantPath string
	}{
		{ActionConfirmPayment, "/api/payments/toss/confirm"},
		{ActionDowngrade, "/api/payments/toss/downgrade"},
		{ActionCancelSubscription, "/api/payments/toss/cancel-subscription"},
	}

	for _, tt := range tests {
		srv, got := recordingBackend(t)
		a := NewTossAdapter(newBackendClient(srv.URL))

		_, err := a.Invoke(context.Background(), tt.action, Identity{UserID: "u1"}, "application/json", []byte(`{}`))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.action, err)
		}
		if got.Method != http.MethodPost {
			t.Fatalf("%s: method = %s", tt.action, got.Method)
		}
		if got.URL.Path != tt.wantPath {
			t.Fatalf("%s: path = %s, want %s", tt.action, got.URL.Path, tt.wantPath)
		}
	}
}

func TestTossAdapterBillingStatus(t *testing.T) {
	srv, got := recordingBackend(t)
	a := NewTossAdapter(newBackendClient(srv.URL))

	res, err := a.BillingStatus(context.Background(), Identity{UserID: "u9"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Method != http.MethodGet || got.URL.Path != "/api/payments/toss/billing/status" {
		t.Fatalf("request = %s %s", got.Method, got.URL.Path)
	}
	if got.Header.Get("x-user-id") != "u9" {
		t.Fatalf("identity header missing")
	}
	if res.ContentType != "application/json" {
		t.Fatalf("content type = %q", res.ContentType)
	}
}
