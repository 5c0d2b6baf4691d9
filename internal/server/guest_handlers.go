package server

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/omriShneor/project_concierge/internal/autoresponse"
	"github.com/omriShneor/project_concierge/internal/database"
	"github.com/omriShneor/project_concierge/internal/guest"
)

func (s *Server) handleVerifyGuest(w http.ResponseWriter, r *http.Request) {
	if s.guests == nil {
		respondError(w, http.StatusServiceUnavailable, "guest verification not configured")
		return
	}

	var creds guest.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if creds.Empty() {
		respondError(w, http.StatusBadRequest, "at least one of phoneNumber, name, ginCode or email is required")
		return
	}

	res, err := s.guests.Verify(r.Context(), creds)
	if err != nil {
		s.logger.Error("guest verification failed", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, guest.Result{
			Method:  guest.MethodNone,
			Message: autoresponse.DefaultEscalation,
		})
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleListGuests(w http.ResponseWriter, r *http.Request) {
	guests, err := s.db.ListGuests(r.Context())
	if err != nil {
		s.internalError(w, "failed to list guests", err)
		return
	}
	if guests == nil {
		guests = []database.Guest{}
	}
	respondJSON(w, http.StatusOK, guests)
}

func (s *Server) handleCreateGuest(w http.ResponseWriter, r *http.Request) {
	var g database.Guest
	if err := decodeJSON(r, &g); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(g.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := s.db.CreateGuest(r.Context(), g)
	if err != nil {
		s.internalError(w, "failed to create guest", err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}
