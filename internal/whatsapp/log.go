package whatsapp

import (
	"go.uber.org/zap"
	waLog "go.mau.fi/whatsmeow/util/log"
)

// zapLogger routes whatsmeow's logs into zap.
type zapLogger struct {
	s *zap.SugaredLogger
}

func newWALogger(l *zap.Logger, module string) waLog.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return zapLogger{s: l.Named(module).Sugar()}
}

func (z zapLogger) Warnf(msg string, args ...interface{})  { z.s.Warnf(msg, args...) }
func (z zapLogger) Errorf(msg string, args ...interface{}) { z.s.Errorf(msg, args...) }
func (z zapLogger) Infof(msg string, args ...interface{})  { z.s.Infof(msg, args...) }
func (z zapLogger) Debugf(msg string, args ...interface{}) { z.s.Debugf(msg, args...) }

func (z zapLogger) Sub(module string) waLog.Logger {
	return zapLogger{s: z.s.Named(module)}
}
