package store

import (
	"context"

	"github.com/abhaypanjeta/TimeDesk/internal/model"
)

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, name, timezone) VALUES ($1,$2,$3,$4,$5)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Timezone,
	)
	return err
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, name, timezone, created_at, updated_at
		 FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Timezone, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (s *Store) UserByID(ctx context.Context, id string) (*model.User, error) {
	u := &model.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, name, timezone, created_at, updated_at
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Timezone, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// UserTimezone returns the persisted selection, "" when none is set.
func (s *Store) UserTimezone(ctx context.Context, userID string) (string, error) {
	var zone string
	err := s.pool.QueryRow(ctx,
		`SELECT timezone FROM users WHERE id = $1`, userID,
	).Scan(&zone)
	if err != nil {
		return "", notFound(err)
	}
	return zone, nil
}

func (s *Store) SetUserTimezone(ctx context.Context, userID, zone string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET timezone = $1, updated_at = NOW() WHERE id = $2`,
		zone, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
