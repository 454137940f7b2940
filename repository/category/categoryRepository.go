package categoryrepo

import (
	"context"
	"database/sql"

	"boardcamp/model"
)

type Repo interface {
	Create(ctx context.Context, name string) (int64, error)
	List(ctx context.Context) ([]model.Category, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, name string) (int64, error) {
	const q = `
INSERT INTO categories (name)
VALUES ($1)
RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) List(ctx context.Context) ([]model.Category, error) {
	const q = `
SELECT id, name
FROM categories
ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
