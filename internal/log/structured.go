package log

import "go.uber.org/zap"

// StructuredLogger sinks events to a zap.Logger as structured fields,
// in addition to keeping them in memory for later retrieval.
type StructuredLogger struct {
	MemoryLogger
	z *zap.Logger
}

// NewStructuredLogger wraps a zap.Logger as an EventLogger.
func NewStructuredLogger(z *zap.Logger) *StructuredLogger {
	return &StructuredLogger{z: z}
}

func (l *StructuredLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	l.z.Info(event.Details,
		zap.Int("seq", event.Seq),
		zap.Int("turn", event.Turn),
		zap.String("phase", event.Phase),
		zap.Int("player", event.Player),
		zap.String("type", event.Type.String()),
		zap.String("card", event.Card),
	)
}
