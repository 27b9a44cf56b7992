package dice

import "go.uber.org/zap"

// loggedSource wraps a Source and logs every draw at debug level. Useful for
// auditing combat balance without touching the engine.
type loggedSource struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedSource wraps src so that every Intn and Float64 draw is logged to
// logger at debug level.
//
// Precondition: src and logger must be non-nil.
func NewLoggedSource(src Source, logger *zap.Logger) Source {
	return &loggedSource{src: src, logger: logger}
}

func (l *loggedSource) Intn(n int) int {
	v := l.src.Intn(n)
	l.logger.Debug("dice draw",
		zap.Int("bound", n),
		zap.Int("value", v),
	)
	return v
}

func (l *loggedSource) Float64() float64 {
	v := l.src.Float64()
	l.logger.Debug("dice draw",
		zap.Float64("value", v),
	)
	return v
}
