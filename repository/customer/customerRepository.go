package customerrepo

import (
	"context"
	"database/sql"

	"boardcamp/model"
)

type Repo interface {
	Create(ctx context.Context, c *model.Customer) (int64, error)
	Find(ctx context.Context, id int64) (*model.Customer, error)
	List(ctx context.Context, cpfPrefix string) ([]model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
	CPFTakenByOther(ctx context.Context, cpf string, id int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, c *model.Customer) (int64, error) {
	const q = `
INSERT INTO customers (name, phone, cpf, birthday)
VALUES ($1,$2,$3,$4)
RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, q, c.Name, c.Phone, c.CPF, c.Birthday).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*model.Customer, error) {
	const q = `
SELECT id, name, phone, cpf, birthday
FROM customers
WHERE id = $1`
	c := &model.Customer{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.Phone, &c.CPF, &c.Birthday)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List returns customers, optionally narrowed to cpf values starting
// with cpfPrefix (case-insensitive, matching the search contract).
func (r *repo) List(ctx context.Context, cpfPrefix string) ([]model.Customer, error) {
	const q = `
SELECT id, name, phone, cpf, birthday
FROM customers
WHERE $1 = '' OR cpf ILIKE $1 || '%'
ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, cpfPrefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.CPF, &c.Birthday); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, c *model.Customer) error {
	const q = `
UPDATE customers
SET name = $1, phone = $2, cpf = $3, birthday = $4
WHERE id = $5`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Phone, c.CPF, c.Birthday, c.ID)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) CPFTakenByOther(ctx context.Context, cpf string, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM customers WHERE cpf = $1 AND id <> $2)`
	var taken bool
	err := r.db.QueryRowContext(ctx, q, cpf, id).Scan(&taken)
	return taken, err
}
