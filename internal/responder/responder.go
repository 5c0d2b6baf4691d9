// Package responder answers inbound guest messages automatically.
package responder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/omriShneor/project_concierge/internal/autoresponse"
	"github.com/omriShneor/project_concierge/internal/catalogue"
	"github.com/omriShneor/project_concierge/internal/database"
	"github.com/omriShneor/project_concierge/internal/inbox"
	"github.com/omriShneor/project_concierge/internal/metrics"
	"github.com/omriShneor/project_concierge/internal/notify"
)

const (
	defaultWorkerCount = 4
	limiterBurst       = 2

	// KindError is logged when no decision could be made at all.
	KindError = "error"
)

// Store persists the conversation and the decision trail.
type Store interface {
	InsertInboxMessage(ctx context.Context, m database.InboxMessage) (*database.InboxMessage, error)
	CreateAutoResponseLog(ctx context.Context, entry database.AutoResponseLog) (int64, error)
}

// GuestLookup identifies a sender from their phone number.
type GuestLookup interface {
	LookupBySender(ctx context.Context, phone string) (*database.Guest, string, error)
}

// Alerter tells the host a conversation needs a human.
type Alerter interface {
	NotifyEscalation(ctx context.Context, e notify.Escalation)
}

// Deps are the responder's collaborators.
type Deps struct {
	Store     Store
	Catalogue catalogue.Store
	Guests    GuestLookup // optional
	Engine    *autoresponse.Engine
	Sender    inbox.Sender
	Alerts    Alerter // optional
	Logger    *zap.Logger
}

// Config tunes the worker pool and the auto-reply policy.
type Config struct {
	AutoReply        bool
	WorkerCount      int
	RepliesPerMinute int // <= 0 disables throttling
}

// Responder reads inbound messages with a pool of workers and replies to
// each one through the decision engine.
type Responder struct {
	deps    Deps
	cfg     Config
	msgChan <-chan inbox.Message
	logger  *zap.Logger

	limMu    sync.Mutex
	limiters map[string]*rate.Limiter

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(deps Deps, msgChan <-chan inbox.Message, cfg Config) *Responder {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = defaultWorkerCount
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Responder{
		deps:     deps,
		cfg:      cfg,
		msgChan:  msgChan,
		logger:   logger.Named("responder"),
		limiters: make(map[string]*rate.Limiter),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins processing messages from the channel
func (r *Responder) Start() {
	r.logger.Info("responder started", zap.Int("workers", r.cfg.WorkerCount), zap.Bool("auto_reply", r.cfg.AutoReply))
	for i := 0; i < r.cfg.WorkerCount; i++ {
		r.wg.Add(1)
		go r.processLoop()
	}
}

// Stop cancels in-flight work and waits for the workers to exit.
func (r *Responder) Stop() {
	r.cancel()
	r.wg.Wait()
	r.logger.Info("responder stopped")
}

func (r *Responder) processLoop() {
	defer r.wg.Done()

	for {
		select {
		case <-r.ctx.Done():
			return
		case msg, ok := <-r.msgChan:
			if !ok {
				r.logger.Info("message channel closed")
				return
			}
			if err := r.Handle(r.ctx, msg); err != nil {
				r.logger.Error("failed to handle message", zap.String("sender", msg.Number), zap.Error(err))
			}
		}
	}
}

// Handle runs one inbound message through the pipeline. Only failures that
// leave the guest without any reply are returned.
func (r *Responder) Handle(ctx context.Context, msg inbox.Message) error {
	metrics.WorkersActive.Inc()
	defer metrics.WorkersActive.Dec()

	log := r.logger.With(zap.String("sender", msg.Number))

	if _, err := r.deps.Store.InsertInboxMessage(ctx, database.InboxMessage{
		ContactNumber: msg.Number,
		ContactName:   msg.SenderName,
		Text:          msg.Text,
		Direction:     inbox.DirectionInbound,
		Agent:         inbox.AgentGuest,
		CreatedAt:     msg.Timestamp,
	}); err != nil {
		log.Warn("failed to store inbound message", zap.Error(err))
	}

	if !r.cfg.AutoReply {
		return nil
	}
	if !r.allow(msg.Number) {
		metrics.RepliesThrottled.Inc()
		log.Info("auto-reply throttled")
		return nil
	}

	props, err := r.deps.Catalogue.ListAll(ctx)
	if err != nil {
		log.Error("failed to load catalogue", zap.Error(err))
		return r.fallback(ctx, msg, fmt.Errorf("failed to load catalogue: %w", err))
	}

	req := autoresponse.Request{Question: msg.Text, Properties: props}
	if r.deps.Guests != nil {
		g, ref, err := r.deps.Guests.LookupBySender(ctx, msg.Number)
		if err != nil {
			log.Warn("guest lookup failed, treating sender as unverified", zap.Error(err))
		} else if g != nil {
			req.Verified = true
			req.PropertyRef = ref
			req.GuestPropertyID = g.PropertyID
		}
	}

	start := time.Now()
	decision, reply := r.deps.Engine.RespondTo(ctx, req)
	if decision.Kind == autoresponse.KindAnswer {
		metrics.ObserveCompletion(start)
	}
	metrics.Decisions.WithLabelValues(string(decision.Kind)).Inc()

	log.Info("auto-response decided",
		zap.String("kind", string(decision.Kind)),
		zap.Bool("can_answer", decision.Verdict.CanAnswer),
		zap.String("confidence", string(decision.Verdict.Confidence)),
		zap.String("response_type", string(decision.ResponseType)),
		zap.Bool("verified", req.Verified),
		zap.Bool("success", reply.Success))

	sendErr := r.send(ctx, msg, reply.Message)

	entry := database.AutoResponseLog{
		Sender:       msg.Number,
		Question:     msg.Text,
		Kind:         string(decision.Kind),
		CanAnswer:    decision.Verdict.CanAnswer,
		Confidence:   string(decision.Verdict.Confidence),
		Reason:       decision.Verdict.Reason,
		ResponseType: string(decision.ResponseType),
		Success:      reply.Success && sendErr == nil,
		Response:     reply.Message,
		Error:        joinErrors(reply.Error, sendErr),
	}
	if decision.Property != nil {
		entry.PropertyID = &decision.Property.ID
	}
	r.record(ctx, entry)

	if decision.Kind == autoresponse.KindEscalate || !reply.Success {
		r.alert(ctx, msg, notify.Escalation{
			Kind:   string(decision.Kind),
			Reason: decision.Verdict.Reason,
			Reply:  reply.Message,
			Error:  reply.Error,
		})
	}

	return sendErr
}

// fallback hands the guest to a human when no decision could be made.
func (r *Responder) fallback(ctx context.Context, msg inbox.Message, cause error) error {
	metrics.Decisions.WithLabelValues(KindError).Inc()

	sendErr := r.send(ctx, msg, autoresponse.DefaultEscalation)
	r.record(ctx, database.AutoResponseLog{
		Sender:     msg.Number,
		Question:   msg.Text,
		Kind:       KindError,
		Confidence: string(autoresponse.ConfidenceLow),
		Response:   autoresponse.DefaultEscalation,
		Error:      joinErrors(cause.Error(), sendErr),
	})
	r.alert(ctx, msg, notify.Escalation{
		Kind:  KindError,
		Reply: autoresponse.DefaultEscalation,
		Error: cause.Error(),
	})
	return sendErr
}

func (r *Responder) send(ctx context.Context, msg inbox.Message, text string) error {
	if text == "" {
		return nil
	}

	status := "delivered"
	err := r.deps.Sender.SendText(ctx, msg.Number, text)
	if err != nil {
		status = "failed"
		err = fmt.Errorf("failed to send reply: %w", err)
	} else {
		metrics.RepliesSent.WithLabelValues(string(inbox.AgentAuto)).Inc()
	}

	if _, storeErr := r.deps.Store.InsertInboxMessage(ctx, database.InboxMessage{
		ContactNumber: msg.Number,
		Text:          text,
		Direction:     inbox.DirectionOutbound,
		Agent:         inbox.AgentAuto,
		Status:        status,
	}); storeErr != nil {
		r.logger.Warn("failed to store outbound message", zap.String("sender", msg.Number), zap.Error(storeErr))
	}
	return err
}

func (r *Responder) record(ctx context.Context, entry database.AutoResponseLog) {
	if _, err := r.deps.Store.CreateAutoResponseLog(ctx, entry); err != nil {
		r.logger.Warn("failed to log auto-response", zap.String("sender", entry.Sender), zap.Error(err))
	}
}

func (r *Responder) alert(ctx context.Context, msg inbox.Message, e notify.Escalation) {
	if r.deps.Alerts == nil {
		return
	}
	e.Sender = msg.Number
	e.SenderName = msg.SenderName
	e.Question = msg.Text
	e.At = time.Now()
	r.deps.Alerts.NotifyEscalation(ctx, e)
}

// allow applies the per-sender reply budget.
func (r *Responder) allow(sender string) bool {
	if r.cfg.RepliesPerMinute <= 0 {
		return true
	}

	r.limMu.Lock()
	lim, ok := r.limiters[sender]
	if !ok {
		lim = rate.NewLimiter(rate.Every(time.Minute/time.Duration(r.cfg.RepliesPerMinute)), limiterBurst)
		r.limiters[sender] = lim
	}
	r.limMu.Unlock()

	return lim.Allow()
}

func joinErrors(replyErr string, sendErr error) string {
	var errs []error
	if replyErr != "" {
		errs = append(errs, errors.New(replyErr))
	}
	if sendErr != nil {
		errs = append(errs, sendErr)
	}
	if err := errors.Join(errs...); err != nil {
		return err.Error()
	}
	return ""
}
