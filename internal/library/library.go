// Package library answers read queries over the music library store.
//
// Every call acquires its own store session and releases it before
// returning. Calls block; callers on an event loop should run them off it.
package library

import (
	"io"
	"log/slog"

	"github.com/llehouerou/synaudio/internal/db"
)

type Library struct {
	store *db.Store
	log   *slog.Logger
}

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the library logger.
func WithLogger(l *slog.Logger) Option {
	return func(lib *Library) {
		if l != nil {
			lib.log = l
		}
	}
}

func New(store *db.Store, opts ...Option) *Library {
	l := &Library{
		store: store,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.With("module", "library")
	return l
}
