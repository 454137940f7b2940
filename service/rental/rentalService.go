package rental

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"boardcamp/model"
	rentalrepo "boardcamp/repository/rental"
)

// errors used by controllers

type ErrCode string

const (
	ErrValidation      ErrCode = "VALIDATION"
	ErrNotAvailable    ErrCode = "NOT_AVAILABLE"
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrAlreadyReturned ErrCode = "ALREADY_RETURNED"
	ErrStillOpen       ErrCode = "STILL_OPEN"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Filter = rentalrepo.Filter

type Repo = rentalrepo.Repo

type Service interface {
	// Checkout: create a rental and reserve one unit of game stock.
	Checkout(ctx context.Context, customerID, gameID, daysRented int64) (*model.Rental, error)

	// Return: close an open rental, restore stock and settle any delay fee.
	Return(ctx context.Context, rentalID int64) (*model.Rental, error)

	// Delete: remove a closed rental permanently.
	Delete(ctx context.Context, rentalID int64) error

	// List: rentals enriched with customer and game summaries.
	List(ctx context.Context, f Filter) ([]model.EnrichedRental, error)
}

// ----- Service implementation -----

type service struct {
	r     Repo
	today func() model.Date
}

func New(r Repo) Service {
	return &service{r: r, today: model.Today}
}

// Checkout validates the request, prices the rental and applies the
// insert + stock decrement as one unit. Missing customer, missing game
// and exhausted stock all collapse to NOT_AVAILABLE; the API reports
// them as a single client error.
func (s *service) Checkout(ctx context.Context, customerID, gameID, daysRented int64) (*model.Rental, error) {
	if daysRented < 1 {
		return nil, makeErr(ErrValidation)
	}

	ok, err := s.r.CustomerExists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, makeErr(ErrNotAvailable)
	}

	game, err := s.r.FindGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotAvailable)
		}
		return nil, err
	}
	if game.StockTotal < 1 {
		return nil, makeErr(ErrNotAvailable)
	}

	rental := &model.Rental{
		CustomerID:    customerID,
		GameID:        gameID,
		RentDate:      s.today(),
		DaysRented:    daysRented,
		OriginalPrice: float64(daysRented) * game.PricePerDay,
	}

	if err := s.r.CreateWithStockDecrement(ctx, rental); err != nil {
		// Stock may have run out between the read and the write.
		if errors.Is(err, rentalrepo.ErrNoStock) {
			return nil, makeErr(ErrNotAvailable)
		}
		return nil, err
	}

	return rental, nil
}

// Return closes the rental dated today. A rental returned after its
// agreed period is charged originalPrice for every extra day; early or
// on-time returns leave delayFee null.
func (s *service) Return(ctx context.Context, rentalID int64) (*model.Rental, error) {
	rental, err := s.r.Find(ctx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	if !rental.Open() {
		return nil, makeErr(ErrAlreadyReturned)
	}

	today := s.today()
	fee := delayFee(rental, today)

	if err := s.r.CloseWithStockIncrement(ctx, rental.ID, rental.GameID, today, fee); err != nil {
		if errors.Is(err, rentalrepo.ErrNotOpen) {
			return nil, makeErr(ErrAlreadyReturned)
		}
		return nil, err
	}

	rental.ReturnDate = &today
	rental.DelayFee = fee
	return rental, nil
}

// delayFee returns nil unless the rental is overdue. Overdue rentals
// pay the full original price once per extra day.
func delayFee(r *model.Rental, today model.Date) *float64 {
	elapsed := int64(math.Ceil(today.Sub(r.RentDate.Time).Hours() / 24))
	over := elapsed - r.DaysRented
	if over <= 0 {
		return nil
	}
	fee := r.OriginalPrice * float64(over)
	return &fee
}

func (s *service) Delete(ctx context.Context, rentalID int64) error {
	err := s.r.Delete(ctx, rentalID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return makeErr(ErrNotFound)
	case errors.Is(err, rentalrepo.ErrOpen):
		return makeErr(ErrStillOpen)
	default:
		return err
	}
}

func (s *service) List(ctx context.Context, f Filter) ([]model.EnrichedRental, error) {
	return s.r.List(ctx, f)
}
