package server

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/omriShneor/project_concierge/internal/database"
	"github.com/omriShneor/project_concierge/internal/inbox"
	"github.com/omriShneor/project_concierge/internal/metrics"
)

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	convs, err := s.db.ListConversations(r.Context())
	if err != nil {
		s.internalError(w, "failed to list conversations", err)
		return
	}
	if convs == nil {
		convs = []database.Conversation{}
	}
	respondJSON(w, http.StatusOK, convs)
}

func (s *Server) handleListConversationMessages(w http.ResponseWriter, r *http.Request) {
	number := inbox.NormalizeNumber(r.PathValue("number"))
	if number == "" {
		respondError(w, http.StatusBadRequest, "invalid contact number")
		return
	}

	msgs, err := s.db.ListConversationMessages(r.Context(), number, queryInt(r, "limit", 100))
	if err != nil {
		s.internalError(w, "failed to list messages", err)
		return
	}
	if msgs == nil {
		msgs = []database.InboxMessage{}
	}
	respondJSON(w, http.StatusOK, msgs)
}

type manualReplyRequest struct {
	Text string `json:"text"`
}

// handleManualReply sends an agent-written reply and stores it in the
// conversation, marked failed when the transport rejects it.
func (s *Server) handleManualReply(w http.ResponseWriter, r *http.Request) {
	if s.sender == nil {
		respondError(w, http.StatusServiceUnavailable, "no message transport configured")
		return
	}
	number := inbox.NormalizeNumber(r.PathValue("number"))
	if number == "" {
		respondError(w, http.StatusBadRequest, "invalid contact number")
		return
	}

	var req manualReplyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	ctx := r.Context()
	sendErr := s.sender.SendText(ctx, number, req.Text)
	status := "delivered"
	if sendErr != nil {
		status = "failed"
		s.logger.Warn("manual reply failed", zap.String("to", number), zap.Error(sendErr))
	} else {
		metrics.RepliesSent.WithLabelValues(string(inbox.AgentHuman)).Inc()
	}

	stored, err := s.db.InsertInboxMessage(ctx, database.InboxMessage{
		ContactNumber: number,
		Text:          req.Text,
		Direction:     inbox.DirectionOutbound,
		Agent:         inbox.AgentHuman,
		Status:        status,
	})
	if err != nil {
		s.internalError(w, "failed to store reply", err)
		return
	}

	if sendErr != nil {
		respondJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error":   "failed to send message",
			"message": stored,
		})
		return
	}
	respondJSON(w, http.StatusCreated, stored)
}
