package payment

import "net/http"

// Identity is the opaque caller identity handed down from the upstream
// session layer. The gateway never fabricates one: empty values are
// forwarded as-is and the backend ledger makes the authorization call.
type Identity struct {
	UserID        string
	Authorization string
}

// forwardHeader builds the forwarded header set. The inbound content type is
// relayed as-is, defaulting to application/json when the storefront sent
// none. The identity header is only attached when present, matching what the
// storefront sends; alwaysIdentity forces the header even when empty for
// the routes where the backend expects it unconditionally.
func (id Identity) forwardHeader(contentType string, alwaysIdentity bool) http.Header {
	if contentType == "" {
		contentType = "application/json"
	}
	h := http.Header{}
	h.Set("Content-Type", contentType)
	if id.UserID != "" || alwaysIdentity {
		h.Set("x-user-id", id.UserID)
	}
	if id.Authorization != "" || alwaysIdentity {
		h.Set("Authorization", id.Authorization)
	}
	return h
}
