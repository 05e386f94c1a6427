package service

import (
	"context"
	"time"
)

// SecurityEventType names a credential state transition.
type SecurityEventType string

const (
	EventCredentialLocked   SecurityEventType = "credential.locked"
	EventCredentialUnlocked SecurityEventType = "credential.unlocked"
	EventCredentialChanged  SecurityEventType = "credential.changed"
	EventPolicyUpdated      SecurityEventType = "policy.updated"
)

// SecurityEvent is published whenever a credential or the policy changes state.
// It never carries secrets.
type SecurityEvent struct {
	RequestID  string            `json:"request_id,omitempty"` // For distributed tracing
	Type       SecurityEventType `json:"type"`
	Username   string            `json:"username,omitempty"`
	Actor      string            `json:"actor,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishSecurityEvent publishes a security event for downstream auditing
	PublishSecurityEvent(ctx context.Context, event *SecurityEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
