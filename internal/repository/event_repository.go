package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aydocorp/portal-api/internal/domain"
)

// EventRepository encapsulates event persistence.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	Update(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	GetByTitleAndStart(ctx context.Context, title string, start time.Time) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Delete(ctx context.Context, id string) error
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository instantiates repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

const eventColumns = `id, title, description, event_type, location, start_time, end_time,
               recurring, recurrence_pattern, organizer_id, attendees, capacity, private,
               created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	attendees, err := json.Marshal(event.Attendees)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO events (title, description, event_type, location, start_time, end_time,
            recurring, recurrence_pattern, organizer_id, attendees, capacity, private)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		event.Title,
		event.Description,
		event.Type,
		event.Location,
		event.StartTime,
		event.EndTime,
		event.Recurring,
		event.RecurrencePattern,
		event.OrganizerID,
		attendees,
		event.Capacity,
		event.Private,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	attendees, err := json.Marshal(event.Attendees)
	if err != nil {
		return err
	}
	const query = `
        UPDATE events SET description=$1, event_type=$2, location=$3, end_time=$4,
            recurring=$5, recurrence_pattern=$6, attendees=$7, capacity=$8, private=$9,
            updated_at=NOW()
        WHERE id=$10
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		event.Description,
		event.Type,
		event.Location,
		event.EndTime,
		event.Recurring,
		event.RecurrencePattern,
		attendees,
		event.Capacity,
		event.Private,
		event.ID,
	).Scan(&event.UpdatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events WHERE id=$1`
	return scanEvent(r.pool.QueryRow(ctx, query, id))
}

func (r *eventRepository) GetByTitleAndStart(ctx context.Context, title string, start time.Time) (*domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events WHERE LOWER(title)=LOWER($1) AND start_time=$2`
	return scanEvent(r.pool.QueryRow(ctx, query, title, start))
}

func (r *eventRepository) List(ctx context.Context) ([]domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events ORDER BY start_time ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *event)
	}
	return result, rows.Err()
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var event domain.Event
	var attendees []byte
	if err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Type,
		&event.Location,
		&event.StartTime,
		&event.EndTime,
		&event.Recurring,
		&event.RecurrencePattern,
		&event.OrganizerID,
		&attendees,
		&event.Capacity,
		&event.Private,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(attendees) > 0 {
		if err := json.Unmarshal(attendees, &event.Attendees); err != nil {
			return nil, err
		}
	}
	return &event, nil
}
