package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/communityhub/events-api/internal/core/domain"
)

// ActivityRepository stores the audit trail. Rows outlive their event, so
// event_id carries no foreign key.
type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Record(ctx context.Context, a *domain.Activity) error {
	if !validID(a.EventID) {
		return fmt.Errorf("record activity: malformed event id %q", a.EventID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_activity (id, type, event_id, actor_id, actor_role, status, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, string(a.Type), a.EventID, a.ActorID, string(a.ActorRole), string(a.Status), a.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	a.ID = id
	return nil
}

func (r *ActivityRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Activity, error) {
	out := []*domain.Activity{}
	if !validID(eventID) {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, event_id, actor_id, actor_role, status, occurred_at
		 FROM event_activity WHERE event_id = $1 ORDER BY occurred_at ASC, id ASC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			a                  domain.Activity
			kind, role, status string
			occurred           sql.NullTime
		)
		if err := rows.Scan(&a.ID, &kind, &a.EventID, &a.ActorID, &role, &status, &occurred); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Type = domain.ActivityType(kind)
		a.ActorRole = domain.Role(role)
		a.Status = domain.EventStatus(status)
		a.OccurredAt = occurred.Time.UTC()
		out = append(out, &a)
	}
	return out, rows.Err()
}
