package closet

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/wardrobe-api/internal/database"
)

type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// List returns the user's items, newest first. An empty category means all.
func (r *Repository) List(ctx context.Context, userID uuid.UUID, category string) ([]Item, error) {
	var rows []database.ClosetItem

	q := r.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if category != "" {
		q = q.Where("category = ?", category)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list closet items: %w", err)
	}

	items := make([]Item, 0, len(rows))
	for i := range rows {
		items = append(items, toModel(&rows[i]))
	}
	return items, nil
}

func (r *Repository) Create(ctx context.Context, userID uuid.UUID, in ItemInput) (*Item, error) {
	row := &database.ClosetItem{
		UserID:    userID,
		Name:      in.Name,
		Category:  in.Category,
		Color:     in.Color,
		Brand:     in.Brand,
		Pattern:   in.Pattern,
		Style:     in.Style,
		Seasons:   in.Seasons,
		Occasions: in.Occasions,
		ImageURL:  in.ImageURL,
	}

	if _, err := r.db.NewInsert().Model(row).Returning("*").Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create closet item: %w", err)
	}

	item := toModel(row)
	return &item, nil
}

// Delete removes an item owned by userID. Items of other users are reported
// as not found.
func (r *Repository) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*database.ClosetItem)(nil)).
		Where("id = ?", itemID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete closet item: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func toModel(row *database.ClosetItem) Item {
	return Item{
		ID:        row.ID,
		Name:      row.Name,
		Category:  row.Category,
		Color:     row.Color,
		Brand:     row.Brand,
		Pattern:   row.Pattern,
		Style:     row.Style,
		Seasons:   nonNil(row.Seasons),
		Occasions: nonNil(row.Occasions),
		ImageURL:  row.ImageURL,
		CreatedAt: row.CreatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
