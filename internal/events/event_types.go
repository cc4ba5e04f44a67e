package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/commodity-gate/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded EventType = "auth.login_succeeded"
	EventLoginFailed    EventType = "auth.login_failed"
	EventLogout         EventType = "auth.logout"
	EventTokenRejected  EventType = "auth.token_rejected"
	EventProductChanged EventType = "inventory.product_changed"
)

// Actor identifies who triggered an event. Empty for anonymous callers.
type Actor struct {
	UserID string      `json:"user_id,omitempty"`
	Email  string      `json:"email,omitempty"`
	Role   domain.Role `json:"role,omitempty"`
	IP     string      `json:"ip,omitempty"`
}

// ActorFromIdentity builds an actor for an authenticated identity.
func ActorFromIdentity(id domain.Identity, ip string) Actor {
	return Actor{UserID: id.ID, Email: id.Email, Role: id.Role, IP: ip}
}

// Event represents an audit-worthy occurrence.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// New stamps an event with an ID and the current time.
func New(eventType EventType, actor Actor, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// LoginFailedPayload payload.
type LoginFailedPayload struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// TokenRejectedPayload payload.
type TokenRejectedPayload struct {
	Path string `json:"path"`
}

// ProductChangedPayload payload.
type ProductChangedPayload struct {
	ProductID string `json:"product_id"`
	Action    string `json:"action"`
}
