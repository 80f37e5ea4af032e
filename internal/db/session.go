package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// Opener hands out dedicated connections. *sql.DB satisfies it.
type Opener interface {
	Conn(ctx context.Context) (*sql.Conn, error)
}

// SessionManager binds one storage connection to one unit of work, usually
// an inbound request.
type SessionManager struct {
	opener  Opener
	dialect Dialect
	open    atomic.Int64
}

func NewSessionManager(opener Opener, dialect Dialect) *SessionManager {
	return &SessionManager{opener: opener, dialect: dialect}
}

// Dialect returns the dialect every session from this manager speaks.
func (m *SessionManager) Dialect() Dialect {
	return m.dialect
}

// Open returns the number of sessions acquired and not yet released.
func (m *SessionManager) Open() int64 {
	return m.open.Load()
}

// Acquire reserves a connection for the caller. The session must be released
// with Release; it must not be shared between concurrent requests.
func (m *SessionManager) Acquire(ctx context.Context) (*Session, error) {
	conn, err := m.opener.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire session: %w", err)
	}
	m.open.Add(1)
	return &Session{conn: conn, dialect: m.dialect, mgr: m}, nil
}

// WithSession runs fn inside an acquire/release pair. The session is released
// even when fn fails or panics.
func (m *SessionManager) WithSession(ctx context.Context, fn func(*Session) error) (err error) {
	s, err := m.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := s.Release(); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}()
	return fn(s)
}

// Session is a request-scoped handle to the storage engine.
type Session struct {
	conn    *sql.Conn
	dialect Dialect
	mgr     *SessionManager

	once sync.Once
	err  error
}

func (s *Session) Dialect() Dialect {
	return s.dialect
}

// Release returns the connection to the driver. Only the first call has an
// effect; later calls return the same result.
func (s *Session) Release() error {
	s.once.Do(func() {
		s.err = s.conn.Close()
		s.mgr.open.Add(-1)
	})
	return s.err
}

func (s *Session) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.conn.ExecContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *Session) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.conn.QueryContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *Session) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return s.conn.QueryRowContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *Session) PingContext(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

type sessionKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the session stored by NewContext, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}
