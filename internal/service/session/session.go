package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/dataverse"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/domain/resource"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/logger"
)

// Connection executes actions and partial updates against the platform.
type Connection interface {
	Execute(ctx context.Context, request dataverse.Request, response any) error
	Update(ctx context.Context, delta resource.Delta) error
	Close() error
}

// QueryContext looks remote resources up by name.
type QueryContext interface {
	Find(ctx context.Context, kind resource.Kind, name string) ([]resource.Resource, error)
	Close() error
}

// Remote hands out the shared connection and query context.
type Remote interface {
	Connection(ctx context.Context) (Connection, error)
	Query(ctx context.Context) (QueryContext, error)
}

// ConnectFunc opens a connection.
type ConnectFunc func(ctx context.Context) (Connection, error)

// QueryFunc derives a query context from an open connection.
type QueryFunc func(conn Connection) (QueryContext, error)

// ErrClosed is returned when a closed session is used.
var ErrClosed = errors.New("session is closed")

// Session lazily opens one connection and one query context. It is not safe for
// concurrent use; a CLI run drives it from a single goroutine.
type Session struct {
	connect  ConnectFunc
	newQuery QueryFunc

	conn   Connection
	query  QueryContext
	closed bool
}

// New creates a session that calls connect on first use.
func New(connect ConnectFunc, newQuery QueryFunc) *Session {
	return &Session{
		connect:  connect,
		newQuery: newQuery,
	}
}

// Connection returns the shared connection, opening it on the first call.
// A failed attempt is not cached.
func (s *Session) Connection(ctx context.Context) (Connection, error) {
	if s.closed {
		return nil, ErrClosed
	}

	if s.conn != nil {
		return s.conn, nil
	}

	logger.Info(ctx, "Connecting to Dataverse...")

	conn, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Connected.")

	s.conn = conn

	return conn, nil
}

// Query returns the shared query context, opening the connection if needed.
func (s *Session) Query(ctx context.Context) (QueryContext, error) {
	if s.closed {
		return nil, ErrClosed
	}

	if s.query != nil {
		return s.query, nil
	}

	conn, err := s.Connection(ctx)
	if err != nil {
		return nil, err
	}

	query, err := s.newQuery(conn)
	if err != nil {
		return nil, fmt.Errorf("create query context: %w", err)
	}

	s.query = query

	return query, nil
}

// Close releases the query context and then the connection, each only if it was
// created. Calling Close more than once is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true

	var errs []error

	if s.query != nil {
		if err := s.query.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close query context: %w", err))
		}
	}

	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close connection: %w", err))
		}
	}

	return errors.Join(errs...)
}
