package rng

import "go.uber.org/zap"

// Logged wraps a Source and logs every draw at debug level. Useful when
// auditing why a replay diverged: the draw sequence is the whole story.
type Logged struct {
	src    Source
	logger *zap.Logger
}

// NewLogged creates a Logged source that draws from src and logs each draw.
//
// Precondition: src and logger must be non-nil.
func NewLogged(src Source, logger *zap.Logger) *Logged {
	return &Logged{src: src, logger: logger}
}

// Intn draws from the wrapped source and logs the bound and result.
//
// Precondition: n > 0.
func (l *Logged) Intn(n int) int {
	v := l.src.Intn(n)
	l.logger.Debug("rng draw",
		zap.Int("bound", n),
		zap.Int("value", v),
	)
	return v
}
