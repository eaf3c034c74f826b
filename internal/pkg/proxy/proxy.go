// Package proxy forwards normalized requests to the authoritative backend
// ledger service. Bodies pass through verbatim (no re-serialization, so JSON
// payloads are never double-encoded) and the upstream status code is
// preserved. The proxy never retries; redelivery is the caller's job.
package proxy

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
)

// ErrNotConfigured is returned when no backend base address is set. The
// message is intentionally generic so responses never leak which variable
// was missing.
var ErrNotConfigured = errors.New("API url not configured")

const maxResponseBytes = 4 << 20

// Client talks to the backend ledger. It is constructed once at startup and
// injected into the controllers; there is no lazily-built shared instance.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		BaseURL: cfg.BackendBaseURL(),
		HTTPClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// Result is the relayed upstream response.
type Result struct {
	Status      int
	ContentType string
	Body        []byte
}

// CacheControl returns the response cache policy. Only catalog reads opt in
// to the brief public cache (they change slowly and carry no caller
// identity); every other response is keyed to a user and must never be
// stored by a shared cache.
func CacheControl(method string, cacheable bool) string {
	if cacheable && method == http.MethodGet {
		return "public, max-age=30"
	}
	return "no-store"
}

// Forward relays one request to the backend. The header set is forwarded
// as-is; callers decide which inbound headers to propagate.
func (c *Client) Forward(ctx context.Context, method, path string, header http.Header, body []byte) (*Result, error) {
	if c.BaseURL == "" {
		return nil, ErrNotConfigured
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("backend request build failed: %w", err)
	}
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("backend response read failed: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}

	return &Result{
		Status:      resp.StatusCode,
		ContentType: contentType,
		Body:        respBody,
	}, nil
}

// ForwardJSON relays like Forward but guarantees the relayed body is valid
// JSON: an empty upstream body becomes {} and unparseable text is downgraded
// to {"error": <raw text>} so the immediate caller always gets JSON back.
func (c *Client) ForwardJSON(ctx context.Context, method, path string, header http.Header, body []byte) (*Result, error) {
	res, err := c.Forward(ctx, method, path, header, body)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(res.Body)
	switch {
	case len(trimmed) == 0:
		res.Body = []byte("{}")
	case json.Valid(trimmed):
		res.Body = trimmed
	default:
		wrapped, merr := json.Marshal(map[string]string{"error": string(trimmed)})
		if merr != nil {
			wrapped = []byte(`{"error":"Unable to parse backend response"}`)
		}
		res.Body = wrapped
	}
	res.ContentType = "application/json"
	return res, nil
}
