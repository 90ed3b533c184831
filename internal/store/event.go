package store

import (
	"context"

	"github.com/abhaypanjeta/TimeDesk/internal/model"
)

const eventCols = `id, user_id, title, category, priority, date, time_of_day,
		        description, completed, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }, ev *model.Event) error {
	return row.Scan(
		&ev.ID, &ev.UserID, &ev.Title, &ev.Category, &ev.Priority, &ev.Date,
		&ev.Time, &ev.Description, &ev.Completed, &ev.CreatedAt, &ev.UpdatedAt,
	)
}

func (s *Store) CreateEvent(ctx context.Context, ev *model.Event) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO events (id, user_id, title, category, priority, date, time_of_day, description, completed)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 RETURNING created_at, updated_at`,
		ev.ID, ev.UserID, ev.Title, ev.Category, ev.Priority, ev.Date, ev.Time, ev.Description, ev.Completed,
	).Scan(&ev.CreatedAt, &ev.UpdatedAt)
}

// ListEvents returns all of a user's events, stored-instant ascending.
func (s *Store) ListEvents(ctx context.Context, userID string) ([]model.Event, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+eventCols+`
		 FROM events
		 WHERE user_id = $1
		 ORDER BY date, time_of_day`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		var ev model.Event
		if err := scanEvent(rows, &ev); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (s *Store) GetEvent(ctx context.Context, userID, id string) (*model.Event, error) {
	ev := &model.Event{}
	err := scanEvent(s.pool.QueryRow(ctx,
		`SELECT `+eventCols+`
		 FROM events WHERE id = $1 AND user_id = $2`, id, userID,
	), ev)
	if err != nil {
		return nil, notFound(err)
	}
	return ev, nil
}

func (s *Store) UpdateEvent(ctx context.Context, ev *model.Event) error {
	err := s.pool.QueryRow(ctx,
		`UPDATE events
		 SET title=$1, category=$2, priority=$3, date=$4, time_of_day=$5,
		     description=$6, completed=$7, updated_at=NOW()
		 WHERE id=$8 AND user_id=$9
		 RETURNING updated_at`,
		ev.Title, ev.Category, ev.Priority, ev.Date, ev.Time,
		ev.Description, ev.Completed, ev.ID, ev.UserID,
	).Scan(&ev.UpdatedAt)
	return notFound(err)
}

// ToggleEvent flips the completion flag and returns the new value.
func (s *Store) ToggleEvent(ctx context.Context, userID, id string) (bool, error) {
	var completed bool
	err := s.pool.QueryRow(ctx,
		`UPDATE events SET completed = NOT completed, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING completed`, id, userID,
	).Scan(&completed)
	if err != nil {
		return false, notFound(err)
	}
	return completed, nil
}

func (s *Store) DeleteEvent(ctx context.Context, userID, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM events WHERE id = $1 AND user_id = $2`, id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
