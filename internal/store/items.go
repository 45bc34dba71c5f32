package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Mikkelka/gametrack/internal/model"
)

// QueryByOwner returns every item belonging to a user, in storage order.
// Display ordering is the cache's concern.
func (s *SQLite) QueryByOwner(ctx context.Context, userID string) ([]model.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, status, sort_order, platform, platform_color,
		       favorite, completion_date, user_id
		FROM items
		WHERE user_id = ?
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// Get returns a single item by ID, or ErrNotFound
func (s *SQLite) Get(ctx context.Context, id string) (*model.Item, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, status, sort_order, platform, platform_color,
		       favorite, completion_date, user_id
		FROM items WHERE id = ?
	`, id)

	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return it, err
}

// Apply commits a batch of operations in a single transaction, then pushes
// the resulting change events to watchers of the affected owners. An update
// aimed at a missing document is skipped rather than failing the batch.
func (s *SQLite) Apply(ctx context.Context, ops []model.Op) error {
	if len(ops) == 0 {
		return nil
	}

	var changes []Change
	err := s.transaction(func(tx *sql.Tx) error {
		for _, op := range ops {
			switch op.Kind {
			case model.OpSet:
				if op.Item == nil {
					return fmt.Errorf("set operation %q without payload", op.ID)
				}
				existing, err := getItemTx(tx, op.ID)
				if err != nil {
					return err
				}
				if err := upsertItemTx(tx, *op.Item); err != nil {
					return err
				}
				kind := ChangeAdded
				if existing != nil {
					kind = ChangeModified
				}
				changes = append(changes, Change{Kind: kind, Item: *op.Item})

			case model.OpUpdate:
				existing, err := getItemTx(tx, op.ID)
				if err != nil {
					return err
				}
				if existing == nil {
					s.log.Warn("update for missing document skipped", "id", op.ID)
					continue
				}
				op.Patch.Apply(existing)
				if err := upsertItemTx(tx, *existing); err != nil {
					return err
				}
				changes = append(changes, Change{Kind: ChangeModified, Item: *existing})

			case model.OpDelete:
				existing, err := getItemTx(tx, op.ID)
				if err != nil {
					return err
				}
				if existing == nil {
					continue
				}
				if _, err := tx.Exec(`DELETE FROM items WHERE id = ?`, op.ID); err != nil {
					return err
				}
				changes = append(changes, Change{
					Kind: ChangeRemoved,
					Item: model.Item{ID: existing.ID, UserID: existing.UserID},
				})

			default:
				return fmt.Errorf("unknown operation kind %d", op.Kind)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.hub.emit(changes)
	return nil
}

func upsertItemTx(tx *sql.Tx, it model.Item) error {
	_, err := tx.Exec(`
		INSERT INTO items (id, title, status, sort_order, platform,
		                   platform_color, favorite, completion_date, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			status = excluded.status,
			sort_order = excluded.sort_order,
			platform = excluded.platform,
			platform_color = excluded.platform_color,
			favorite = excluded.favorite,
			completion_date = excluded.completion_date,
			user_id = excluded.user_id
	`, it.ID, it.Title, string(it.Status), it.Order, it.Platform,
		it.PlatformColor, boolToInt(it.Favorite), nullable(it.CompletionDate), it.UserID)
	return err
}

func getItemTx(tx *sql.Tx, id string) (*model.Item, error) {
	row := tx.QueryRow(`
		SELECT id, title, status, sort_order, platform, platform_color,
		       favorite, completion_date, user_id
		FROM items WHERE id = ?
	`, id)
	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return it, err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(sc scanner) (*model.Item, error) {
	var it model.Item
	var status string
	var favorite int
	var completionDate *string

	err := sc.Scan(&it.ID, &it.Title, &status, &it.Order, &it.Platform,
		&it.PlatformColor, &favorite, &completionDate, &it.UserID)
	if err != nil {
		return nil, err
	}

	it.Status = model.Status(status)
	it.Favorite = favorite == 1
	if completionDate != nil {
		it.CompletionDate = *completionDate
	}
	return &it, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
