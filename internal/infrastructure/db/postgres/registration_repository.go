package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/communityhub/events-api/internal/core/domain"
)

const registrationColumns = "id, user_id, event_id, status, created_at"

type RegistrationRepository struct {
	db *sql.DB
}

func NewRegistrationRepository(db *sql.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func scanRegistration(row scanner) (*domain.Registration, error) {
	var (
		reg    domain.Registration
		status string
	)
	if err := row.Scan(&reg.ID, &reg.UserID, &reg.EventID, &status, &reg.CreatedAt); err != nil {
		return nil, err
	}
	reg.Status = domain.RegistrationStatus(status)
	reg.CreatedAt = reg.CreatedAt.UTC()
	return &reg, nil
}

// Create locks the event row for the rest of the transaction, so concurrent
// registrations for one event run their count and insert one at a time.
func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	if !validID(reg.EventID) {
		return domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin registration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		status   string
		capacity sql.NullInt64
	)
	err = tx.QueryRowContext(ctx, `SELECT status, capacity FROM events WHERE id = $1 FOR UPDATE`, reg.EventID).
		Scan(&status, &capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("lock event: %w", err)
	}
	if domain.EventStatus(status) != domain.StatusApproved {
		return domain.ErrEventNotApproved
	}

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM registrations WHERE user_id = $1 AND event_id = $2)`,
		reg.UserID, reg.EventID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check registration: %w", err)
	}
	if exists {
		return domain.ErrAlreadyRegistered
	}

	if capacity.Valid {
		var active int64
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations WHERE event_id = $1`, reg.EventID).Scan(&active); err != nil {
			return fmt.Errorf("count registrations: %w", err)
		}
		if active >= capacity.Int64 {
			return domain.ErrEventFull
		}
	}

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO registrations (`+registrationColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		id, reg.UserID, reg.EventID, string(reg.Status), reg.CreatedAt,
	)
	if err != nil {
		if pqCode(err) == codeUniqueViolation {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("insert registration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit registration: %w", err)
	}
	reg.ID = id
	return nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, userID, eventID string) error {
	if !validID(eventID) || !validID(userID) {
		return domain.ErrNotRegistered
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE user_id = $1 AND event_id = $2`, userID, eventID)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotRegistered
	}
	return nil
}

func (r *RegistrationRepository) Exists(ctx context.Context, userID, eventID string) (bool, error) {
	if !validID(eventID) || !validID(userID) {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM registrations WHERE user_id = $1 AND event_id = $2)`,
		userID, eventID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return exists, nil
}

func (r *RegistrationRepository) CountActive(ctx context.Context, eventID string) (int64, error) {
	if !validID(eventID) {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations WHERE event_id = $1`, eventID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	return r.list(ctx, "user_id", userID)
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	return r.list(ctx, "event_id", eventID)
}

func (r *RegistrationRepository) list(ctx context.Context, column, id string) ([]*domain.Registration, error) {
	out := []*domain.Registration{}
	if !validID(id) {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE `+column+` = $1 ORDER BY created_at ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}
