package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/omriShneor/project_concierge/internal/whatsapp"
)

// Health Check

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	// Check database connectivity
	if err := s.db.PingContext(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	status := map[string]interface{}{
		"status":   "healthy",
		"whatsapp": whatsapp.StatusDisconnected,
	}
	if s.waState != nil {
		status["whatsapp"] = s.waState.Snapshot().Status
	}
	status["whatsappPaired"] = s.waClient != nil && s.waClient.IsLoggedIn()

	respondJSON(w, http.StatusOK, status)
}

// WhatsApp API

func (s *Server) handleWhatsAppStatus(w http.ResponseWriter, r *http.Request) {
	if s.waState == nil {
		respondJSON(w, http.StatusOK, whatsapp.Snapshot{Status: whatsapp.StatusDisconnected})
		return
	}
	snap := s.waState.Snapshot()
	snap.QR = ""
	respondJSON(w, http.StatusOK, snap)
}

func (s *Server) handleWhatsAppQR(w http.ResponseWriter, r *http.Request) {
	if s.waState == nil {
		respondError(w, http.StatusServiceUnavailable, "WhatsApp not configured")
		return
	}
	snap := s.waState.Snapshot()
	if snap.Status == whatsapp.StatusConnected {
		respondJSON(w, http.StatusOK, snap)
		return
	}
	if snap.QR == "" {
		respondError(w, http.StatusNotFound, "no QR code available yet")
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// helpers

var errEmptyBody = errors.New("request body is required")

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errEmptyBody
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, zap.Error(err))
	respondError(w, http.StatusInternalServerError, msg)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode JSON response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
