// repository/rental/rentalRepository.go
package rentalrepo

import (
	"context"
	"database/sql"
	"errors"

	"boardcamp/model"
)

// Sentinel errors surfaced when a guarded write touches zero rows. The
// guards keep stock counts and rental state consistent under
// concurrent checkout/return of the same game.
var (
	ErrNoStock = errors.New("no stock available")
	ErrNotOpen = errors.New("rental is not open")
	ErrOpen    = errors.New("rental is still open")
)

// Filter narrows rental listings. CustomerID takes precedence over
// GameID; they are never combined.
type Filter struct {
	CustomerID *int64
	GameID     *int64
}

type Repo interface {
	FindGame(ctx context.Context, gameID int64) (*model.Game, error)
	CustomerExists(ctx context.Context, customerID int64) (bool, error)

	// CreateWithStockDecrement inserts the rental and takes one unit of
	// the game's stock in a single transaction. Returns ErrNoStock and
	// leaves everything untouched when the stock guard fails.
	CreateWithStockDecrement(ctx context.Context, r *model.Rental) error

	Find(ctx context.Context, id int64) (*model.Rental, error)

	// CloseWithStockIncrement sets returnDate and delayFee on an open
	// rental and gives the unit back to the game's stock, atomically.
	// Returns ErrNotOpen if the rental was already returned.
	CloseWithStockIncrement(ctx context.Context, rentalID, gameID int64, returnDate model.Date, delayFee *float64) error

	// Delete removes a closed rental. Returns ErrOpen if returnDate is
	// still null, sql.ErrNoRows if the rental does not exist.
	Delete(ctx context.Context, id int64) error

	List(ctx context.Context, f Filter) ([]model.EnrichedRental, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) FindGame(ctx context.Context, gameID int64) (*model.Game, error) {
	const q = `
SELECT id, name, image, stock_total, category_id, price_per_day
FROM games
WHERE id = $1`
	g := &model.Game{}
	err := r.db.QueryRowContext(ctx, q, gameID).Scan(
		&g.ID, &g.Name, &g.Image, &g.StockTotal, &g.CategoryID, &g.PricePerDay,
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *repo) CustomerExists(ctx context.Context, customerID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, customerID).Scan(&ok)
	return ok, err
}

func (r *repo) CreateWithStockDecrement(ctx context.Context, rental *model.Rental) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Guarded decrement: refuses to go below zero even under
	// concurrent checkouts of the same game.
	const dec = `
UPDATE games
SET stock_total = stock_total - 1
WHERE id = $1
AND stock_total >= 1`
	res, err := tx.ExecContext(ctx, dec, rental.GameID)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		err = ErrNoStock
		return err
	}

	const ins = `
INSERT INTO rentals (customer_id, game_id, rent_date, days_rented, return_date, original_price, delay_fee)
VALUES ($1, $2, $3, $4, NULL, $5, NULL)
RETURNING id`
	if err = tx.QueryRowContext(ctx, ins,
		rental.CustomerID, rental.GameID, rental.RentDate, rental.DaysRented, rental.OriginalPrice,
	).Scan(&rental.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repo) Find(ctx context.Context, id int64) (*model.Rental, error) {
	const q = `
SELECT id, customer_id, game_id, rent_date, days_rented, return_date, original_price, delay_fee
FROM rentals
WHERE id = $1`
	rental := &model.Rental{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&rental.ID, &rental.CustomerID, &rental.GameID, &rental.RentDate,
		&rental.DaysRented, &rental.ReturnDate, &rental.OriginalPrice, &rental.DelayFee,
	)
	if err != nil {
		return nil, err
	}
	return rental, nil
}

func (r *repo) CloseWithStockIncrement(ctx context.Context, rentalID, gameID int64, returnDate model.Date, delayFee *float64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// return_date IS NULL guard makes the close write-once.
	const closeRental = `
UPDATE rentals
SET return_date = $2,
	delay_fee = $3
WHERE id = $1
AND return_date IS NULL`
	res, err := tx.ExecContext(ctx, closeRental, rentalID, returnDate, delayFee)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		err = ErrNotOpen
		return err
	}

	const inc = `
UPDATE games
SET stock_total = stock_total + 1
WHERE id = $1`
	if _, err = tx.ExecContext(ctx, inc, gameID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `
DELETE FROM rentals
WHERE id = $1
AND return_date IS NOT NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		// Distinguish missing from still-open for the status mapping.
		const exists = `SELECT EXISTS (SELECT 1 FROM rentals WHERE id = $1)`
		var ok bool
		if err := r.db.QueryRowContext(ctx, exists, id).Scan(&ok); err != nil {
			return err
		}
		if ok {
			return ErrOpen
		}
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) List(ctx context.Context, f Filter) ([]model.EnrichedRental, error) {
	const q = `
SELECT r.id, r.customer_id, r.game_id, r.rent_date, r.days_rented,
       r.return_date, r.original_price, r.delay_fee,
       c.id, c.name,
       g.id, g.name, g.category_id, cat.name AS category_name
FROM rentals r
JOIN customers c ON c.id = r.customer_id
JOIN games g ON g.id = r.game_id
JOIN categories cat ON cat.id = g.category_id
WHERE ($1::BIGINT IS NULL OR r.customer_id = $1)
AND ($2::BIGINT IS NULL OR r.game_id = $2)
ORDER BY r.id`

	customerID := f.CustomerID
	gameID := f.GameID
	// CustomerID wins when both are supplied.
	if customerID != nil {
		gameID = nil
	}

	rows, err := r.db.QueryContext(ctx, q, customerID, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.EnrichedRental
	for rows.Next() {
		var e model.EnrichedRental
		if err := rows.Scan(
			&e.ID, &e.CustomerID, &e.GameID, &e.RentDate, &e.DaysRented,
			&e.ReturnDate, &e.OriginalPrice, &e.DelayFee,
			&e.Customer.ID, &e.Customer.Name,
			&e.Game.ID, &e.Game.Name, &e.Game.CategoryID, &e.Game.CategoryName,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
