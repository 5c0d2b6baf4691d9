package whatsapp

import (
	"go.mau.fi/whatsmeow/types/events"
	"go.uber.org/zap"

	"github.com/omriShneor/project_concierge/internal/inbox"
)

const messageBuffer = 100

// Handler turns whatsmeow events into inbox messages.
type Handler struct {
	messageChan chan inbox.Message
	state       *State
	logger      *zap.Logger
}

func NewHandler(state *State, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		messageChan: make(chan inbox.Message, messageBuffer),
		state:       state,
		logger:      logger.Named("whatsapp"),
	}
}

func (h *Handler) MessageChan() <-chan inbox.Message {
	return h.messageChan
}

func (h *Handler) HandleEvent(evt interface{}) {
	switch v := evt.(type) {
	case *events.Message:
		h.handleMessage(v)
	case *events.Connected:
		if h.state != nil {
			h.state.SetStatus(StatusConnected)
		}
	case *events.Disconnected:
		if h.state != nil {
			h.state.SetStatus(StatusDisconnected)
		}
	case *events.LoggedOut:
		h.logger.Warn("logged out from whatsapp", zap.Bool("on_connect", v.OnConnect))
		if h.state != nil {
			h.state.SetStatus(StatusDisconnected)
		}
	}
}

func (h *Handler) handleMessage(msg *events.Message) {
	// Only direct messages from guests, never groups or our own replies
	if msg.Info.IsGroup || msg.Info.IsFromMe {
		return
	}

	text := extractText(msg)
	if text == "" {
		return
	}

	sender := msg.Info.Sender
	h.logger.Debug("inbound message", zap.String("sender", sender.User), zap.Int("length", len(text)))

	select {
	case h.messageChan <- inbox.Message{
		ID:         msg.Info.ID,
		SenderID:   sender.String(),
		Number:     sender.User,
		SenderName: msg.Info.PushName,
		Text:       text,
		Timestamp:  msg.Info.Timestamp,
	}:
	default:
		h.logger.Warn("message channel full, dropping message", zap.String("sender", sender.User))
	}
}

func extractText(msg *events.Message) string {
	m := msg.Message
	if m == nil {
		return ""
	}

	if m.GetConversation() != "" {
		return m.GetConversation()
	}

	if ext := m.GetExtendedTextMessage(); ext != nil {
		return ext.GetText()
	}

	if img := m.GetImageMessage(); img != nil && img.GetCaption() != "" {
		return "[Image] " + img.GetCaption()
	}

	if vid := m.GetVideoMessage(); vid != nil && vid.GetCaption() != "" {
		return "[Video] " + vid.GetCaption()
	}

	if doc := m.GetDocumentMessage(); doc != nil {
		return "[Document] " + doc.GetFileName()
	}

	return ""
}
