package repository

import (
	"errors"

	"github.com/openmerit/badgestore/internal/metrics"
	"github.com/openmerit/badgestore/internal/notify"
	"github.com/openmerit/badgestore/pkg/logger"
)

// Configuration errors raised by Open before any store access.
var (
	// ErrNoConnection means Open was called without a connection URI.
	ErrNoConnection = errors.New("connection URI is required")
	// ErrNilSink means a notification sink option was supplied but carries
	// no callable sink.
	ErrNilSink = errors.New("notification sink is not callable")
)

// Store is the single entry point to the badge database. It validates
// inputs, performs idempotent creates, issues queries, and publishes
// notifications for mutations, each public operation executing as one
// logical unit of work.
//
// Lookups return the zero result (nil, false, "") for "not found" and
// reserve the error return for store failures. Creates against an existing
// natural key return the existing identifier instead of failing.
type Store struct {
	db   *DB
	sink notify.Sink
	log  *logger.Logger
}

// Option configures a Store.
type Option func(*Store) error

// WithSink installs the notification sink. Passing a nil sink is a
// configuration error.
func WithSink(sink notify.Sink) Option {
	return func(s *Store) error {
		if sink == nil {
			return ErrNilSink
		}
		if f, ok := sink.(notify.Func); ok && f == nil {
			return ErrNilSink
		}
		s.sink = sink
		return nil
	}
}

// WithLogger installs a logger. Without it the store is silent.
func WithLogger(log *logger.Logger) Option {
	return func(s *Store) error {
		if log != nil {
			s.log = log
		}
		return nil
	}
}

// Open connects to the database identified by the connection URI and
// returns the store facade. An empty URI or an invalid option fails before
// any store access.
func Open(dsn string, opts ...Option) (*Store, error) {
	if dsn == "" {
		return nil, ErrNoConnection
	}

	s := &Store{log: logger.Nop()}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	s.db = db

	s.log.Info().Str("driver", db.driver).Msg("Connected to badge database")
	return s, nil
}

// Migrate brings the schema up to date: embedded SQL migrations on
// postgres, AutoMigrate from the model declarations on sqlite.
func (s *Store) Migrate() error {
	if s.db.driver == DriverPostgres {
		return s.db.migratePostgres()
	}
	return s.db.AutoMigrate()
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Health checks if the underlying database is reachable.
func (s *Store) Health() error {
	return s.db.Health()
}

// publish hands an event to the configured sink. The mutation that caused
// it is already committed; a sink error is returned to the caller untouched
// rather than swallowed, so integration failures stay visible.
func (s *Store) publish(topic string, msg map[string]any) error {
	if s.sink == nil {
		return nil
	}
	metrics.RecordNotification(topic)
	return s.sink.Publish(topic, msg)
}
