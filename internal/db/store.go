// Package db is the query executor over the embedded SQLite library file.
//
// A Store owns the database handle. Each logical operation acquires its own
// Session (one dedicated connection) and must release it; WithSession does
// that on every exit path.
package db

import (
	"context"
	"database/sql"
	"io"
	"log/slog"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/synaudio/internal/dberr"
)

const driverName = "sqlite"

// Store is the session provider for one library file.
type Store struct {
	db      *sql.DB
	log     *slog.Logger
	metrics *Metrics
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for query tracing.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics enables query metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// Open opens the library file at path. The parent directory must exist.
// Any failure to reach the file is reported as dberr.ErrStoreConnection.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, dberr.StoreConnection("open "+path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, dberr.StoreConnection("open "+path, err)
	}

	s := newStore(db, opts...)
	s.log.Debug("store opened", "path", path)
	return s, nil
}

func newStore(db *sql.DB, opts ...Option) *Store {
	s := &Store{
		db:  db,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("module", "db")
	return s
}

// DB returns the underlying handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Session acquires a dedicated connection. The caller must Close it.
func (s *Store) Session() (*Session, error) {
	conn, err := s.db.Conn(context.Background())
	if err != nil {
		s.metrics.observeError("session", dberr.KindStoreConnection)
		return nil, dberr.StoreConnection("acquire session", err)
	}
	s.metrics.sessionOpened()
	return &Session{conn: conn, store: s}, nil
}

// WithSession runs fn with a fresh session and releases it afterwards,
// including when fn returns an error or panics.
func (s *Store) WithSession(fn func(*Session) error) error {
	sess, err := s.Session()
	if err != nil {
		return err
	}
	defer sess.Close()
	return fn(sess)
}

// InUse returns the number of connections currently checked out.
func (s *Store) InUse() int {
	return s.db.Stats().InUse
}
