package store

import (
	"context"

	"github.com/Mikkelka/gametrack/internal/model"
	"github.com/google/uuid"
)

// Platforms returns all platforms belonging to a user, sorted by name.
func (s *SQLite) Platforms(ctx context.Context, userID string) ([]model.Platform, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, color, user_id
		FROM platforms
		WHERE user_id = ?
		ORDER BY name
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var platforms []model.Platform
	for rows.Next() {
		var p model.Platform
		if err := rows.Scan(&p.ID, &p.Name, &p.Color, &p.UserID); err != nil {
			return nil, err
		}
		platforms = append(platforms, p)
	}
	return platforms, rows.Err()
}

// AddPlatform creates a platform, assigning an id when absent
func (s *SQLite) AddPlatform(ctx context.Context, p model.Platform) (*model.Platform, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO platforms (id, name, color, user_id)
		VALUES (?, ?, ?, ?)
	`, p.ID, p.Name, p.Color, p.UserID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SetPlatformColor updates a platform's color. The item fan-out is the
// tracker's job; deleting or recoloring a platform never cascades here.
func (s *SQLite) SetPlatformColor(ctx context.Context, id, color string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE platforms SET color = ? WHERE id = ?`, color, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePlatform removes a platform. Items referencing it keep their stale
// denormalized platform fields until reassigned.
func (s *SQLite) DeletePlatform(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM platforms WHERE id = ?`, id)
	return err
}
