package log

import "go.uber.org/zap"

// ZapLogger records events in memory and mirrors each one to a zap logger
// as a structured entry.
type ZapLogger struct {
	MemoryLogger
	z *zap.Logger
}

func NewZapLogger(z *zap.Logger) *ZapLogger {
	return &ZapLogger{z: z}
}

func (l *ZapLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	l.z.Info(event.Details,
		zap.Int("seq", l.seq),
		zap.Int("turn", event.Turn),
		zap.Int("round", event.Round),
		zap.String("state", event.State),
		zap.String("character", CharacterName(event.Player)),
		zap.Stringer("type", event.Type),
		zap.String("card", event.Card),
	)
}
