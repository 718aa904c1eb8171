package audit

import (
	"time"

	id "shopez/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose. The demo
// keeps everything in memory, but the categories still drive how sinks route
// and sample events.
type EventCategory string

const (
	// CategorySecurity covers events relevant to security monitoring.
	// Examples: login failures, logouts.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers events useful for debugging and visibility.
	// Examples: session creation, cart activity.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	SessionID id.SessionID  `json:"session_id"`
	Action    string        `json:"action"`
	// Email is the identity involved, when one exists. Login failures carry
	// no email so the log cannot be used to enumerate accounts.
	Email string `json:"email,omitempty"`
	// Reason gives extra context for failures and rejections.
	Reason string `json:"reason,omitempty"`
	// RequestID is the correlation ID from the HTTP request context.
	RequestID string `json:"request_id,omitempty"`
}

// AuditEvent names the actions this service emits.
type AuditEvent string

const (
	EventSessionOpened  AuditEvent = "session_opened"
	EventUserSignedUp   AuditEvent = "user_signed_up"
	EventLoginSucceeded AuditEvent = "login_succeeded"
	EventLoginFailed    AuditEvent = "login_failed"
	EventLoggedOut      AuditEvent = "logged_out"
	EventCartItemAdded  AuditEvent = "cart_item_added"
)
