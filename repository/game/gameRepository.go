package gamerepo

import (
	"context"
	"database/sql"

	"boardcamp/model"
)

type Repo interface {
	Create(ctx context.Context, g *model.Game) (int64, error)
	List(ctx context.Context, namePrefix string) ([]model.GameWithCategory, error)
	CategoryExists(ctx context.Context, categoryID int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, g *model.Game) (int64, error) {
	const q = `
INSERT INTO games (name, image, stock_total, category_id, price_per_day)
VALUES ($1,$2,$3,$4,$5)
RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		g.Name, g.Image, g.StockTotal, g.CategoryID, g.PricePerDay,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// List returns games joined with their category name. A non-empty
// namePrefix narrows to names starting with it, case-insensitively.
func (r *repo) List(ctx context.Context, namePrefix string) ([]model.GameWithCategory, error) {
	const q = `
SELECT g.id, g.name, g.image, g.stock_total, g.category_id, g.price_per_day,
       c.name AS category_name
FROM games g
JOIN categories c ON c.id = g.category_id
WHERE $1 = '' OR g.name ILIKE $1 || '%'
ORDER BY g.id`
	rows, err := r.db.QueryContext(ctx, q, namePrefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.GameWithCategory
	for rows.Next() {
		var g model.GameWithCategory
		if err := rows.Scan(
			&g.ID, &g.Name, &g.Image, &g.StockTotal, &g.CategoryID, &g.PricePerDay,
			&g.CategoryName,
		); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *repo) CategoryExists(ctx context.Context, categoryID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, categoryID).Scan(&ok)
	return ok, err
}
