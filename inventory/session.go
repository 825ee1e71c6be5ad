package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	// `semaphore.Weighted` is a mutex whose Acquire honours a context deadline.
	"golang.org/x/sync/semaphore"

	"github.com/user/stockview-go/apperror"
)

// ErrLockTimeout is wrapped in the 503 returned when the session stays busy past the
// acquire timeout.
var ErrLockTimeout = errors.New("timed out waiting for the inventory session")

// Querier is what listings need from the SQL Server session. *sqlx.Conn and *sqlx.DB
// both satisfy it.
type Querier interface {
	QueryRowxContext(ctx context.Context, query string, args ...any) *sqlx.Row
	QueryxContext(ctx context.Context, query string, args ...any) (*sqlx.Rows, error)
}

// Session owns the single connection to the inventory source. The source only gives us
// one session, so Do runs callers strictly one at a time.
type Session struct {
	conn           Querier
	sem            *semaphore.Weighted
	acquireTimeout time.Duration
}

// NewSession wraps conn. acquireTimeout bounds how long Do waits for its turn.
func NewSession(conn Querier, acquireTimeout time.Duration) *Session {
	return &Session{
		conn:           conn,
		sem:            semaphore.NewWeighted(1),
		acquireTimeout: acquireTimeout,
	}
}

// Do runs fn with exclusive use of the connection. The session is released when fn
// returns or panics. If the turn does not come before the acquire timeout or ctx's
// deadline, Do returns a 503 apperror wrapping ErrLockTimeout. If ctx is canceled while
// waiting, it returns a canceled apperror wrapping ctx.Err().
func (s *Session) Do(ctx context.Context, fn func(ctx context.Context, q Querier) error) error {
	acquireCtx, cancel := context.WithTimeout(ctx, s.acquireTimeout)
	err := s.sem.Acquire(acquireCtx, 1)
	cancel()
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return apperror.NewCanceledError("Request canceled", ctx.Err())
		}
		return apperror.NewUnavailableError("Inventory source is busy, please retry", ErrLockTimeout)
	}
	defer s.sem.Release(1)

	return fn(ctx, s.conn)
}
