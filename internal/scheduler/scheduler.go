// Package scheduler delivers scheduled outbound messages when they fall due.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/omriShneor/project_concierge/internal/database"
	"github.com/omriShneor/project_concierge/internal/inbox"
	"github.com/omriShneor/project_concierge/internal/metrics"
)

const (
	defaultInterval = 30 * time.Second
	// lookahead lets a tick pick up messages due before the next one.
	lookahead = 60 * time.Second
)

// Store is the scheduled-message and inbox surface the scheduler needs.
type Store interface {
	GetDueScheduledMessages(ctx context.Context, horizon time.Time) ([]database.ScheduledMessage, error)
	MarkScheduledSent(ctx context.Context, id string) error
	MarkScheduledFailed(ctx context.Context, id, reason string) error
	InsertInboxMessage(ctx context.Context, m database.InboxMessage) (*database.InboxMessage, error)
}

// Result is the outcome for one scheduled message.
type Result struct {
	ID     string                   `json:"id"`
	Status database.ScheduledStatus `json:"status"`
	Error  string                   `json:"error,omitempty"`
}

type Scheduler struct {
	store    Store
	sender   inbox.Sender
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time

	// serializes ticks and manual runs so a message is never sent twice
	mu sync.Mutex
}

func New(store Store, sender inbox.Sender, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		store:    store,
		sender:   sender,
		interval: interval,
		logger:   logger.Named("scheduler"),
		now:      time.Now,
	}
}

// ProcessDue sends every pending message due within the lookahead window.
func (s *Scheduler) ProcessDue(ctx context.Context) ([]Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	due, err := s.store.GetDueScheduledMessages(ctx, s.now().Add(lookahead))
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(due))
	for _, m := range due {
		results = append(results, s.deliver(ctx, m))
	}
	return results, nil
}

func (s *Scheduler) deliver(ctx context.Context, m database.ScheduledMessage) Result {
	log := s.logger.With(zap.String("id", m.ID), zap.String("recipient", m.Recipient))

	if err := s.sender.SendText(ctx, m.Recipient, m.Text); err != nil {
		log.Warn("scheduled send failed", zap.Error(err))
		if markErr := s.store.MarkScheduledFailed(ctx, m.ID, err.Error()); markErr != nil {
			log.Error("failed to mark scheduled message failed", zap.Error(markErr))
		}
		metrics.ScheduledProcessed.WithLabelValues(string(database.ScheduledStatusFailed)).Inc()
		return Result{ID: m.ID, Status: database.ScheduledStatusFailed, Error: err.Error()}
	}

	if _, err := s.store.InsertInboxMessage(ctx, database.InboxMessage{
		ContactNumber: inbox.NormalizeNumber(m.Recipient),
		Text:          m.Text,
		Direction:     inbox.DirectionOutbound,
		Agent:         inbox.AgentScheduled,
	}); err != nil {
		log.Warn("failed to store scheduled message in inbox", zap.Error(err))
	}

	if err := s.store.MarkScheduledSent(ctx, m.ID); err != nil {
		log.Error("failed to mark scheduled message sent", zap.Error(err))
		return Result{ID: m.ID, Status: database.ScheduledStatusSent, Error: err.Error()}
	}

	metrics.ScheduledProcessed.WithLabelValues(string(database.ScheduledStatusSent)).Inc()
	metrics.RepliesSent.WithLabelValues(string(inbox.AgentScheduled)).Inc()
	log.Info("scheduled message sent")
	return Result{ID: m.ID, Status: database.ScheduledStatusSent}
}

// Run polls until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("scheduler started", zap.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return nil
		case <-ticker.C:
			results, err := s.ProcessDue(ctx)
			if err != nil {
				s.logger.Error("failed to process scheduled messages", zap.Error(err))
				continue
			}
			if len(results) > 0 {
				s.logger.Info("processed scheduled messages", zap.Int("count", len(results)))
			}
		}
	}
}
