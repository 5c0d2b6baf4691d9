package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/omriShneor/project_concierge/internal/database"
	"github.com/omriShneor/project_concierge/internal/inbox"
	"github.com/omriShneor/project_concierge/internal/scheduler"
	"github.com/omriShneor/project_concierge/internal/timeutil"
)

func (s *Server) handleListScheduled(w http.ResponseWriter, r *http.Request) {
	status := database.ScheduledStatus(r.URL.Query().Get("status"))
	switch status {
	case "", database.ScheduledStatusPending, database.ScheduledStatusSent,
		database.ScheduledStatusCancelled, database.ScheduledStatusFailed:
	default:
		respondError(w, http.StatusBadRequest, "invalid status filter")
		return
	}

	msgs, err := s.db.ListScheduledMessages(r.Context(), status)
	if err != nil {
		s.internalError(w, "failed to list scheduled messages", err)
		return
	}
	if msgs == nil {
		msgs = []database.ScheduledMessage{}
	}
	respondJSON(w, http.StatusOK, msgs)
}

type scheduleRequest struct {
	Recipient     string `json:"recipient"`
	Text          string `json:"text"`
	ScheduledTime string `json:"scheduledTime"`
	Timezone      string `json:"timezone,omitempty"`
}

func (s *Server) handleCreateScheduled(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	recipient := inbox.NormalizeNumber(req.Recipient)
	text := strings.TrimSpace(req.Text)
	if recipient == "" || text == "" {
		respondError(w, http.StatusBadRequest, "recipient and text are required")
		return
	}
	at, err := timeutil.ParseScheduleTime(req.ScheduledTime, req.Timezone)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scheduledTime: "+err.Error())
		return
	}

	msg, err := s.db.CreateScheduledMessage(r.Context(), recipient, text, at)
	if err != nil {
		s.internalError(w, "failed to schedule message", err)
		return
	}
	respondJSON(w, http.StatusCreated, msg)
}

func (s *Server) handleCancelScheduled(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.db.CancelScheduledMessage(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "no pending scheduled message with that id")
			return
		}
		s.internalError(w, "failed to cancel scheduled message", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": string(database.ScheduledStatusCancelled)})
}

// handleProcessScheduled runs one delivery pass outside the ticker.
func (s *Server) handleProcessScheduled(w http.ResponseWriter, r *http.Request) {
	if s.scheduler == nil {
		respondError(w, http.StatusServiceUnavailable, "scheduler not configured")
		return
	}

	results, err := s.scheduler.ProcessDue(r.Context())
	if err != nil {
		s.internalError(w, "failed to process scheduled messages", err)
		return
	}
	if results == nil {
		results = []scheduler.Result{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"processed": len(results),
		"results":   results,
	})
}
