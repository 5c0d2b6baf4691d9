package notify

import (
	"context"
	"time"
)

// Escalation describes a guest conversation that was handed to a human.
type Escalation struct {
	Sender     string
	SenderName string
	Question   string
	Reply      string // what the guest was told
	Kind       string
	Reason     string
	Error      string // set when the hand-off was caused by a failure
	At         time.Time
}

// Notifier delivers escalation alerts to a specific recipient
type Notifier interface {
	// Send sends an alert for an escalation to the specified recipient
	Send(ctx context.Context, e *Escalation, recipient string) error
	// Name returns the notifier type name (for logging)
	Name() string
	// IsConfigured returns true if the notifier has server-side config
	IsConfigured() bool
}
