package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/omriShneor/project_concierge/internal/autoresponse"
	"github.com/omriShneor/project_concierge/internal/catalogue"
	"github.com/omriShneor/project_concierge/internal/config"
	"github.com/omriShneor/project_concierge/internal/database"
	"github.com/omriShneor/project_concierge/internal/guest"
	"github.com/omriShneor/project_concierge/internal/inbox"
	"github.com/omriShneor/project_concierge/internal/llm"
	"github.com/omriShneor/project_concierge/internal/logger"
	"github.com/omriShneor/project_concierge/internal/notify"
	"github.com/omriShneor/project_concierge/internal/responder"
	"github.com/omriShneor/project_concierge/internal/scheduler"
	"github.com/omriShneor/project_concierge/internal/server"
	"github.com/omriShneor/project_concierge/internal/whatsapp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if err := run(cfg, log); err != nil {
		log.Fatal("concierge stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Phase 1: Core infrastructure
	db, err := database.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	defer db.Close()

	store, cache := initCatalogue(ctx, db, cfg, log)
	engine := autoresponse.NewEngine(initCompleter(cfg, log), autoresponse.Config{
		Timeout:               cfg.CompletionTimeout,
		RequireVerifiedAccess: cfg.RequireVerifiedAccess,
	})
	guests := guest.NewService(db)
	notifyService := initNotifyService(cfg, log)

	// Phase 2: Transport
	waState := whatsapp.NewState()
	waHandler := whatsapp.NewHandler(waState, log)
	waClient, err := whatsapp.NewClient(waHandler, waState, cfg.WhatsAppDBPath, log)
	var sender inbox.Sender = inbox.LogSender{Logger: log.Named("sender")}
	if err != nil {
		log.Warn("WhatsApp client unavailable, replies will only be logged", zap.Error(err))
		waState.SetError(err.Error())
		waClient = nil
	} else {
		sender = waClient
	}

	// Phase 3: Workers
	resp := responder.New(responder.Deps{
		Store:     db,
		Catalogue: store,
		Guests:    guests,
		Engine:    engine,
		Sender:    sender,
		Alerts:    notifyService,
		Logger:    log,
	}, waHandler.MessageChan(), responder.Config{
		AutoReply:        cfg.AutoReply,
		WorkerCount:      cfg.WorkerCount,
		RepliesPerMinute: cfg.RepliesPerMinute,
	})
	sched := scheduler.New(db, sender, cfg.SchedulerInterval, log)

	srv := server.New(server.Config{
		DB:        db,
		Catalogue: store,
		Cache:     cache,
		Engine:    engine,
		Guests:    guests,
		Scheduler: sched,
		Sender:    sender,
		WAClient:  waClient,
		WAState:   waState,
		Logger:    log,
		Port:      cfg.HTTPPort,
	})

	resp.Start()
	defer resp.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return sched.Run(gctx)
	})
	if waClient != nil {
		g.Go(func() error {
			defer waClient.Disconnect()
			// pairing problems are shown to agents, not fatal
			if err := waClient.Connect(gctx); err != nil {
				log.Warn("WhatsApp connect failed", zap.Error(err))
				waState.SetError(err.Error())
			}
			<-gctx.Done()
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// initCatalogue puts a Redis cache in front of the property table when one
// is configured and reachable.
func initCatalogue(ctx context.Context, db *database.DB, cfg *config.Config, log *zap.Logger) (catalogue.Store, server.Invalidator) {
	if cfg.RedisAddr == "" {
		return db, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unreachable, serving catalogue from the database", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = rdb.Close()
		return db, nil
	}

	log.Info("catalogue cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CatalogueTTL))
	cached := catalogue.NewCachedStore(db, rdb, cfg.CatalogueTTL)
	return cached, cached
}

func initCompleter(cfg *config.Config, log *zap.Logger) autoresponse.Completer {
	if cfg.AnthropicAPIKey == "" {
		log.Warn("ANTHROPIC_API_KEY not set, generated answers disabled")
		return nil
	}
	log.Info("completion client configured", zap.String("model", cfg.ClaudeModel))
	return llm.NewClient(llm.Config{
		APIKey:      cfg.AnthropicAPIKey,
		Model:       cfg.ClaudeModel,
		MaxTokens:   cfg.ClaudeMaxTokens,
		Temperature: cfg.ClaudeTemperature,
	})
}

func initNotifyService(cfg *config.Config, log *zap.Logger) *notify.Service {
	var emailNotifier notify.Notifier
	if cfg.EmailConfigured() {
		emailNotifier = notify.NewResendNotifier(cfg.ResendAPIKey, cfg.EmailFrom)
		log.Info("escalation e-mail configured (Resend)")
	}
	return notify.NewService(emailNotifier, cfg.EscalationEmail, log)
}
