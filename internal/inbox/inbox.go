// Package inbox holds the message types shared by the transport, the
// responder and the scheduler.
package inbox

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Direction of a message relative to the host.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// Agent identifies who authored a message.
type Agent string

const (
	AgentGuest     Agent = "guest"
	AgentAuto      Agent = "auto"
	AgentHuman     Agent = "human"
	AgentScheduled Agent = "scheduled"
)

// Message is an inbound guest message as delivered by a transport.
type Message struct {
	ID         string
	SenderID   string // transport address, e.g. a WhatsApp JID
	Number     string // bare phone number
	SenderName string
	Text       string
	Timestamp  time.Time
}

// Sender delivers text to a recipient's phone number.
type Sender interface {
	SendText(ctx context.Context, to, text string) error
}

// NormalizeNumber strips everything but digits so "+20 100-123" and
// "20100123" compare equal.
func NormalizeNumber(number string) string {
	var sb strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// LogSender only logs outbound text. It stands in for a transport that is
// not paired yet.
type LogSender struct {
	Logger *zap.Logger
}

func (s LogSender) SendText(ctx context.Context, to, text string) error {
	if s.Logger != nil {
		s.Logger.Info("simulated send", zap.String("to", to), zap.Int("length", len(text)))
	}
	return nil
}
