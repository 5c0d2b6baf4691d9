package server

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/omriShneor/project_concierge/internal/autoresponse"
	"github.com/omriShneor/project_concierge/internal/classifier"
	"github.com/omriShneor/project_concierge/internal/database"
)

const processingErrorReason = "Error occurred during processing"

type autoResponseRequest struct {
	Question    string `json:"question"`
	PropertyRef string `json:"propertyRef,omitempty"`
	Verified    bool   `json:"verified,omitempty"`
	GuestPhone  string `json:"guestPhone,omitempty"`
}

type autoResponseResponse struct {
	Response        string                  `json:"response"`
	CanAnswer       bool                    `json:"canAnswer"`
	Confidence      autoresponse.Confidence `json:"confidence"`
	Reason          string                  `json:"reason"`
	Kind            autoresponse.Kind       `json:"kind,omitempty"`
	ResponseType    string                  `json:"responseType,omitempty"`
	Analysis        *classifier.Analysis    `json:"analysis,omitempty"`
	PropertiesCount int                     `json:"propertiesCount"`
	Success         bool                    `json:"success"`
	Error           string                  `json:"error,omitempty"`
	Timestamp       time.Time               `json:"timestamp"`
}

func (s *Server) handleAutoResponse(w http.ResponseWriter, r *http.Request) {
	if s.engine == nil {
		respondError(w, http.StatusServiceUnavailable, "auto-response engine not configured")
		return
	}

	var req autoResponseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		respondError(w, http.StatusBadRequest, "question is required")
		return
	}

	ctx := r.Context()
	props, err := s.catalogue.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to load catalogue", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, autoResponseResponse{
			Response:   autoresponse.DefaultEscalation,
			Confidence: autoresponse.ConfidenceLow,
			Reason:     processingErrorReason,
			Error:      "failed to load properties",
			Timestamp:  time.Now().UTC(),
		})
		return
	}

	engineReq := autoresponse.Request{
		Question:    req.Question,
		Properties:  props,
		PropertyRef: req.PropertyRef,
		Verified:    req.Verified,
	}
	if req.GuestPhone != "" && s.guests != nil {
		g, ref, err := s.guests.LookupBySender(ctx, req.GuestPhone)
		if err != nil {
			s.logger.Warn("guest lookup failed", zap.Error(err))
		} else if g != nil {
			engineReq.Verified = true
			engineReq.GuestPropertyID = g.PropertyID
			if engineReq.PropertyRef == "" {
				engineReq.PropertyRef = ref
			}
		}
	}

	decision, reply := s.engine.RespondTo(ctx, engineReq)
	respondJSON(w, http.StatusOK, autoResponseResponse{
		Response:        reply.Message,
		CanAnswer:       decision.Verdict.CanAnswer,
		Confidence:      decision.Verdict.Confidence,
		Reason:          decision.Verdict.Reason,
		Kind:            decision.Kind,
		ResponseType:    string(decision.ResponseType),
		Analysis:        &decision.Analysis,
		PropertiesCount: len(props),
		Success:         reply.Success,
		Error:           reply.Error,
		Timestamp:       time.Now().UTC(),
	})
}

// handleCanAnswer returns only the answerability verdict.
func (s *Server) handleCanAnswer(w http.ResponseWriter, r *http.Request) {
	if s.engine == nil {
		respondError(w, http.StatusServiceUnavailable, "auto-response engine not configured")
		return
	}
	question := strings.TrimSpace(r.URL.Query().Get("question"))
	if question == "" {
		respondError(w, http.StatusBadRequest, "question is required")
		return
	}

	props, err := s.catalogue.ListAll(r.Context())
	if err != nil {
		s.internalError(w, "failed to load properties", err)
		return
	}
	respondJSON(w, http.StatusOK, s.engine.CanAnswer(question, props))
}

func (s *Server) handleListAutoResponses(w http.ResponseWriter, r *http.Request) {
	logs, err := s.db.ListAutoResponseLogs(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		s.internalError(w, "failed to list auto responses", err)
		return
	}
	if logs == nil {
		logs = []database.AutoResponseLog{}
	}
	respondJSON(w, http.StatusOK, logs)
}

type quickResponseRequest struct {
	DetailType  string `json:"detailType"`
	DetailValue string `json:"detailValue"`
}

func (s *Server) handleQuickResponse(w http.ResponseWriter, r *http.Request) {
	if s.engine == nil {
		respondError(w, http.StatusServiceUnavailable, "auto-response engine not configured")
		return
	}
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid property id")
		return
	}

	var req quickResponseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.DetailType) == "" {
		respondError(w, http.StatusBadRequest, "detailType is required")
		return
	}

	p, err := s.db.GetProperty(r.Context(), id)
	if err != nil {
		s.internalError(w, "failed to load property", err)
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, "property not found")
		return
	}

	reply := s.engine.QuickResponse(r.Context(), *p, req.DetailType, req.DetailValue)
	status := http.StatusOK
	if !reply.Success {
		status = http.StatusBadGateway
	}
	respondJSON(w, status, reply)
}
