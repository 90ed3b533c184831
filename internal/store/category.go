package store

import (
	"context"

	"github.com/abhaypanjeta/TimeDesk/internal/model"
)

func (s *Store) CreateCategory(ctx context.Context, c *model.Category) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO categories (id, user_id, name, color)
		 VALUES ($1,$2,$3,$4)
		 RETURNING created_at, updated_at`,
		c.ID, c.UserID, c.Name, c.Color,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (s *Store) ListCategories(ctx context.Context, userID string) ([]model.Category, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, name, color, created_at, updated_at
		 FROM categories WHERE user_id = $1 ORDER BY name`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
