package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout = 10 * time.Second
	connectRetries = 30
	retryDelay     = 2 * time.Second
)

// Postgres error codes the repositories translate.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Connect opens a pool and pings it, retrying while the server comes up.
func Connect(ctx context.Context, databaseURL string, log zerolog.Logger) (*sql.DB, error) {
	var lastErr error
	for i := 0; i < connectRetries; i++ {
		db, err := sql.Open("postgres", databaseURL)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = db.PingContext(pingCtx)
			cancel()
			if err == nil {
				log.Info().Msg("connected to postgres")
				return db, nil
			}
			_ = db.Close()
		}
		lastErr = err

		log.Warn().Err(err).Int("attempt", i+1).Msg("postgres not ready, retrying")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return nil, fmt.Errorf("postgres connect after %d attempts: %w", connectRetries, lastErr)
}

// Store groups the repositories backed by one database.
type Store struct {
	Users         *UserRepository
	Events        *EventRepository
	Registrations *RegistrationRepository
	Activity      *ActivityRepository
	db            *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		Users:         NewUserRepository(db),
		Events:        NewEventRepository(db),
		Registrations: NewRegistrationRepository(db),
		Activity:      NewActivityRepository(db),
		db:            db,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return s.db.PingContext(ctx)
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// validID reports whether id can be compared against a UUID column without
// the server rejecting the query.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

type scanner interface {
	Scan(dest ...any) error
}
