package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"

	"github.com/omriShneor/project_concierge/internal/catalogue"
	"github.com/omriShneor/project_concierge/internal/database"
)

// propertySource lets fuzzy rank properties by name, reference and locality.
type propertySource []catalogue.Property

func (p propertySource) String(i int) string {
	prop := p[i]
	return strings.Join([]string{prop.Ref(), prop.Name, prop.District, prop.Zone, prop.Address}, " ")
}

func (p propertySource) Len() int { return len(p) }

func (s *Server) handleListProperties(w http.ResponseWriter, r *http.Request) {
	props, err := s.catalogue.ListAll(r.Context())
	if err != nil {
		s.internalError(w, "failed to list properties", err)
		return
	}

	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		matches := fuzzy.FindFrom(q, propertySource(props))
		ranked := make([]catalogue.Property, 0, len(matches))
		for _, m := range matches {
			ranked = append(ranked, props[m.Index])
		}
		props = ranked
	}
	if props == nil {
		props = []catalogue.Property{}
	}

	respondJSON(w, http.StatusOK, props)
}

func (s *Server) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid property id")
		return
	}

	p, err := s.db.GetProperty(r.Context(), id)
	if err != nil {
		s.internalError(w, "failed to get property", err)
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, "property not found")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleCreateProperty(w http.ResponseWriter, r *http.Request) {
	var p catalogue.Property
	if err := decodeJSON(r, &p); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.db.CreateProperty(r.Context(), p)
	if err != nil {
		s.internalError(w, "failed to create property", err)
		return
	}
	s.invalidateCatalogue(r)

	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid property id")
		return
	}

	var p catalogue.Property
	if err := decodeJSON(r, &p); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	p.ID = id

	if err := s.db.UpdateProperty(r.Context(), p); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "property not found")
			return
		}
		s.internalError(w, "failed to update property", err)
		return
	}
	s.invalidateCatalogue(r)

	updated, err := s.db.GetProperty(r.Context(), id)
	if err != nil || updated == nil {
		s.internalError(w, "failed to reload property", err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) invalidateCatalogue(r *http.Request) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(r.Context()); err != nil {
		s.logger.Warn("failed to invalidate catalogue cache", zap.Error(err))
	}
}
