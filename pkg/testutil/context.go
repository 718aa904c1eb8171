package testutil

import (
	"net/http"

	id "shopez/pkg/domain"
	"shopez/pkg/requestcontext"
)

// WithSessionID adds a session ID to the request context, simulating what
// the RequireSession middleware does for authenticated requests. Invalid
// IDs are silently ignored.
func WithSessionID(req *http.Request, sessionID string) *http.Request {
	parsed, err := id.ParseSessionID(sessionID)
	if err != nil {
		return req
	}
	return req.WithContext(requestcontext.WithSessionID(req.Context(), parsed))
}
