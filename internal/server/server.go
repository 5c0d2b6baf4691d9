package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/omriShneor/project_concierge/internal/autoresponse"
	"github.com/omriShneor/project_concierge/internal/catalogue"
	"github.com/omriShneor/project_concierge/internal/database"
	"github.com/omriShneor/project_concierge/internal/guest"
	"github.com/omriShneor/project_concierge/internal/inbox"
	"github.com/omriShneor/project_concierge/internal/scheduler"
	"github.com/omriShneor/project_concierge/internal/whatsapp"
)

// Invalidator drops cached catalogue snapshots after a write.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Server struct {
	db        *database.DB
	catalogue catalogue.Store
	cache     Invalidator
	engine    *autoresponse.Engine
	guests    *guest.Service
	scheduler *scheduler.Scheduler
	sender    inbox.Sender
	waClient  *whatsapp.Client
	waState   *whatsapp.State
	logger    *zap.Logger
	httpSrv   *http.Server
	port      int
}

// Config wires the server's collaborators. Catalogue defaults to DB, the
// rest may be nil and their routes answer 503.
type Config struct {
	DB        *database.DB
	Catalogue catalogue.Store
	Cache     Invalidator
	Engine    *autoresponse.Engine
	Guests    *guest.Service
	Scheduler *scheduler.Scheduler
	Sender    inbox.Sender
	WAClient  *whatsapp.Client
	WAState   *whatsapp.State
	Logger    *zap.Logger
	Port      int
}

func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := cfg.Catalogue
	if store == nil && cfg.DB != nil {
		store = cfg.DB
	}

	s := &Server{
		db:        cfg.DB,
		catalogue: store,
		cache:     cfg.Cache,
		engine:    cfg.Engine,
		guests:    cfg.Guests,
		scheduler: cfg.Scheduler,
		sender:    cfg.Sender,
		waClient:  cfg.WAClient,
		waState:   cfg.WAState,
		logger:    logger.Named("server"),
		port:      cfg.Port,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.logMiddleware(s.corsMiddleware(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second, // covers a full completion timeout
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /health", s.handleHealthCheck)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Auto-response API
	mux.HandleFunc("GET /api/auto-response", s.handleCanAnswer)
	mux.HandleFunc("POST /api/auto-response", s.handleAutoResponse)
	mux.HandleFunc("GET /api/auto-responses", s.handleListAutoResponses)

	// Guests API
	mux.HandleFunc("POST /api/verify-guest", s.handleVerifyGuest)
	mux.HandleFunc("GET /api/guests", s.handleListGuests)
	mux.HandleFunc("POST /api/guests", s.handleCreateGuest)

	// Properties API
	mux.HandleFunc("GET /api/properties", s.handleListProperties)
	mux.HandleFunc("POST /api/properties", s.handleCreateProperty)
	mux.HandleFunc("GET /api/properties/{id}", s.handleGetProperty)
	mux.HandleFunc("PUT /api/properties/{id}", s.handleUpdateProperty)
	mux.HandleFunc("POST /api/properties/{id}/quick-response", s.handleQuickResponse)

	// Inbox API
	mux.HandleFunc("GET /api/inbox", s.handleListConversations)
	mux.HandleFunc("GET /api/inbox/{number}/messages", s.handleListConversationMessages)
	mux.HandleFunc("POST /api/inbox/{number}/reply", s.handleManualReply)

	// Scheduled messages API
	mux.HandleFunc("GET /api/scheduled", s.handleListScheduled)
	mux.HandleFunc("POST /api/scheduled", s.handleCreateScheduled)
	mux.HandleFunc("DELETE /api/scheduled/{id}", s.handleCancelScheduled)
	mux.HandleFunc("POST /api/process-scheduled", s.handleProcessScheduled)

	// WhatsApp API
	mux.HandleFunc("GET /api/whatsapp/status", s.handleWhatsAppStatus)
	mux.HandleFunc("GET /api/whatsapp/qr", s.handleWhatsAppQR)
}

func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.Int("port", s.port))
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// Handler returns the server's HTTP handler for testing purposes
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// corsMiddleware adds CORS headers for the agent dashboard
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
