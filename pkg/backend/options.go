package backend

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/obsworks/obsqueue/pkg/history"
)

// Config holds backend configuration.
type Config struct {
	BackendID    string
	PollInterval time.Duration
}

// DefaultConfig returns the defaults: a fresh backend identity and a one
// second poll cadence.
func DefaultConfig() Config {
	return Config{
		BackendID:    uuid.New().String(),
		PollInterval: time.Second,
	}
}

// Option configures a Backend.
type Option interface {
	ApplyBackend(*Backend)
}

type optionFunc func(*Backend)

func (f optionFunc) ApplyBackend(b *Backend) { f(b) }

// WithPollInterval sets the poll cadence.
func WithPollInterval(d time.Duration) Option {
	return optionFunc(func(b *Backend) {
		if d > 0 {
			b.config.PollInterval = d
		}
	})
}

// WithBackendID overrides the generated backend identity.
func WithBackendID(id string) Option {
	return optionFunc(func(b *Backend) {
		if id != "" {
			b.config.BackendID = id
		}
	})
}

// WithLogger sets the backend's logger.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	})
}

// WithTransport sets the control-process hand-off.
func WithTransport(t Transport) Option {
	return optionFunc(func(b *Backend) {
		b.transport = t
	})
}

// WithReporter sets the dispatch-outcome receiver (typically the Queue).
func WithReporter(r Reporter) Option {
	return optionFunc(func(b *Backend) {
		b.reporter = r
	})
}

// WithHistory enables audit logging of dispatch outcomes.
func WithHistory(s *history.Store) Option {
	return optionFunc(func(b *Backend) {
		b.hist = s
	})
}
