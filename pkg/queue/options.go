package queue

import (
	"log/slog"

	"github.com/obsworks/obsqueue/pkg/core"
)

// Option configures a Queue at construction time.
type Option interface {
	Apply(*Queue)
}

type optionFunc func(*Queue)

func (f optionFunc) Apply(q *Queue) { f(q) }

// WithLogger sets the queue's logger.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(q *Queue) {
		if l != nil {
			q.logger = l
		}
	})
}

// WithContents binds the container at construction time.
func WithContents(c core.ObservableContents) Option {
	return optionFunc(func(q *Queue) {
		if c != nil {
			q.contents = c
		}
	})
}

// WithBackend binds the backend at construction time.
func WithBackend(b core.Backend) Option {
	return optionFunc(func(q *Queue) {
		if b != nil {
			q.backend = b
			if q.contents != nil {
				b.SetContents(q.contents)
			}
		}
	})
}

// WithEntryClass declares the expected Entry implementation name.
func WithEntryClass(name string) Option {
	return optionFunc(func(q *Queue) {
		q.entryClass = name
	})
}
