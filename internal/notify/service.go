package notify

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Service routes escalation alerts to the host's configured channels.
type Service struct {
	emailNotifier Notifier
	recipient     string
	logger        *zap.Logger
}

// NewService creates a notification service. A nil notifier disables email.
func NewService(emailNotifier Notifier, recipient string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		emailNotifier: emailNotifier,
		recipient:     recipient,
		logger:        logger.Named("notify"),
	}
}

// NotifyEscalation alerts the host. Errors are logged but don't fail the operation.
func (s *Service) NotifyEscalation(ctx context.Context, e Escalation) {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	if !s.IsEmailAvailable() || s.recipient == "" {
		s.logger.Debug("escalation alert skipped, email not configured", zap.String("sender", e.Sender))
		return
	}

	if err := s.emailNotifier.Send(ctx, &e, s.recipient); err != nil {
		s.logger.Warn("escalation alert failed",
			zap.String("notifier", s.emailNotifier.Name()),
			zap.String("sender", e.Sender),
			zap.Error(err))
		return
	}
	s.logger.Info("escalation alert sent", zap.String("sender", e.Sender), zap.String("kind", e.Kind))
}

// IsEmailAvailable returns true if email notifications can be used
func (s *Service) IsEmailAvailable() bool {
	return s.emailNotifier != nil && s.emailNotifier.IsConfigured()
}
