package rental

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"boardcamp/model"
	rentalrepo "boardcamp/repository/rental"

	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	findGameFn       func(ctx context.Context, gameID int64) (*model.Game, error)
	customerExistsFn func(ctx context.Context, customerID int64) (bool, error)
	createFn         func(ctx context.Context, r *model.Rental) error
	findFn           func(ctx context.Context, id int64) (*model.Rental, error)
	closeFn          func(ctx context.Context, rentalID, gameID int64, returnDate model.Date, delayFee *float64) error
	deleteFn         func(ctx context.Context, id int64) error
	listFn           func(ctx context.Context, f rentalrepo.Filter) ([]model.EnrichedRental, error)
}

var _ rentalrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) FindGame(ctx context.Context, gameID int64) (*model.Game, error) {
	return m.findGameFn(ctx, gameID)
}
func (m *mockRepo) CustomerExists(ctx context.Context, customerID int64) (bool, error) {
	return m.customerExistsFn(ctx, customerID)
}
func (m *mockRepo) CreateWithStockDecrement(ctx context.Context, r *model.Rental) error {
	return m.createFn(ctx, r)
}
func (m *mockRepo) Find(ctx context.Context, id int64) (*model.Rental, error) {
	return m.findFn(ctx, id)
}
func (m *mockRepo) CloseWithStockIncrement(ctx context.Context, rentalID, gameID int64, returnDate model.Date, delayFee *float64) error {
	return m.closeFn(ctx, rentalID, gameID, returnDate, delayFee)
}
func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}
func (m *mockRepo) List(ctx context.Context, f rentalrepo.Filter) ([]model.EnrichedRental, error) {
	return m.listFn(ctx, f)
}

func date(y int, mo time.Month, d int) model.Date {
	return model.NewDate(time.Date(y, mo, d, 0, 0, 0, 0, time.UTC))
}

func newService(r Repo, today model.Date) *service {
	return &service{r: r, today: func() model.Date { return today }}
}

// --- checkout ---

func TestCheckout_Success(t *testing.T) {
	ctx := context.Background()
	today := date(2024, 5, 10)

	var created *model.Rental
	m := &mockRepo{
		customerExistsFn: func(ctx context.Context, id int64) (bool, error) { return true, nil },
		findGameFn: func(ctx context.Context, id int64) (*model.Game, error) {
			return &model.Game{ID: id, StockTotal: 3, PricePerDay: 10}, nil
		},
		createFn: func(ctx context.Context, r *model.Rental) error {
			r.ID = 7
			created = r
			return nil
		},
	}
	s := newService(m, today)

	r, err := s.Checkout(ctx, 1, 2, 3)
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, int64(7), r.ID)
	require.Equal(t, int64(1), r.CustomerID)
	require.Equal(t, int64(2), r.GameID)
	require.Equal(t, int64(3), r.DaysRented)
	require.Equal(t, float64(30), r.OriginalPrice)
	require.Equal(t, today, r.RentDate)
	require.Nil(t, r.ReturnDate)
	require.Nil(t, r.DelayFee)
}

func TestCheckout_DaysRentedBelowOne(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		customerExistsFn: func(ctx context.Context, id int64) (bool, error) {
			t.Fatal("store must not be touched")
			return false, nil
		},
	}
	s := newService(m, date(2024, 5, 10))

	_, err := s.Checkout(ctx, 1, 2, 0)
	require.Error(t, err)
	require.Equal(t, ErrValidation, Code(err))
}

func TestCheckout_CustomerMissing(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		customerExistsFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
		createFn: func(ctx context.Context, r *model.Rental) error {
			t.Fatal("no rental must be created")
			return nil
		},
	}
	s := newService(m, date(2024, 5, 10))

	_, err := s.Checkout(ctx, 99, 2, 3)
	require.Error(t, err)
	require.Equal(t, ErrNotAvailable, Code(err))
}

func TestCheckout_GameMissing(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		customerExistsFn: func(ctx context.Context, id int64) (bool, error) { return true, nil },
		findGameFn: func(ctx context.Context, id int64) (*model.Game, error) {
			return nil, sql.ErrNoRows
		},
	}
	s := newService(m, date(2024, 5, 10))

	_, err := s.Checkout(ctx, 1, 99, 3)
	require.Error(t, err)
	require.Equal(t, ErrNotAvailable, Code(err))
}

func TestCheckout_OutOfStock(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		customerExistsFn: func(ctx context.Context, id int64) (bool, error) { return true, nil },
		findGameFn: func(ctx context.Context, id int64) (*model.Game, error) {
			return &model.Game{ID: id, StockTotal: 0, PricePerDay: 10}, nil
		},
		createFn: func(ctx context.Context, r *model.Rental) error {
			t.Fatal("no rental must be created")
			return nil
		},
	}
	s := newService(m, date(2024, 5, 10))

	_, err := s.Checkout(ctx, 1, 2, 3)
	require.Error(t, err)
	require.Equal(t, ErrNotAvailable, Code(err))
}

func TestCheckout_StockRaceLost(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		customerExistsFn: func(ctx context.Context, id int64) (bool, error) { return true, nil },
		findGameFn: func(ctx context.Context, id int64) (*model.Game, error) {
			return &model.Game{ID: id, StockTotal: 1, PricePerDay: 10}, nil
		},
		createFn: func(ctx context.Context, r *model.Rental) error {
			return rentalrepo.ErrNoStock
		},
	}
	s := newService(m, date(2024, 5, 10))

	_, err := s.Checkout(ctx, 1, 2, 3)
	require.Error(t, err)
	require.Equal(t, ErrNotAvailable, Code(err))
}

// --- return ---

func TestReturn_OnTime_NoFee(t *testing.T) {
	ctx := context.Background()
	rentDate := date(2024, 5, 10)
	today := date(2024, 5, 13) // exactly daysRented later

	var gotFee *float64
	var gotDate model.Date
	m := &mockRepo{
		findFn: func(ctx context.Context, id int64) (*model.Rental, error) {
			return &model.Rental{
				ID: id, GameID: 2, RentDate: rentDate,
				DaysRented: 3, OriginalPrice: 30,
			}, nil
		},
		closeFn: func(ctx context.Context, rentalID, gameID int64, returnDate model.Date, delayFee *float64) error {
			gotFee = delayFee
			gotDate = returnDate
			return nil
		},
	}
	s := newService(m, today)

	r, err := s.Return(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, gotFee)
	require.Equal(t, today, gotDate)
	require.NotNil(t, r.ReturnDate)
	require.Equal(t, today, *r.ReturnDate)
	require.Nil(t, r.DelayFee)
}

func TestReturn_Late_ChargesOriginalPricePerExtraDay(t *testing.T) {
	ctx := context.Background()
	rentDate := date(2024, 5, 10)
	today := date(2024, 5, 15) // 5 days elapsed, 2 over

	var gotFee *float64
	m := &mockRepo{
		findFn: func(ctx context.Context, id int64) (*model.Rental, error) {
			return &model.Rental{
				ID: id, GameID: 2, RentDate: rentDate,
				DaysRented: 3, OriginalPrice: 30,
			}, nil
		},
		closeFn: func(ctx context.Context, rentalID, gameID int64, returnDate model.Date, delayFee *float64) error {
			gotFee = delayFee
			return nil
		},
	}
	s := newService(m, today)

	r, err := s.Return(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, gotFee)
	require.Equal(t, float64(60), *gotFee)
	require.NotNil(t, r.DelayFee)
	require.Equal(t, float64(60), *r.DelayFee)
}

func TestReturn_Early_NoFee(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		findFn: func(ctx context.Context, id int64) (*model.Rental, error) {
			return &model.Rental{
				ID: id, GameID: 2, RentDate: date(2024, 5, 10),
				DaysRented: 7, OriginalPrice: 70,
			}, nil
		},
		closeFn: func(ctx context.Context, rentalID, gameID int64, returnDate model.Date, delayFee *float64) error {
			require.Nil(t, delayFee)
			return nil
		},
	}
	s := newService(m, date(2024, 5, 12))

	_, err := s.Return(ctx, 1)
	require.NoError(t, err)
}

func TestReturn_NotFound(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		findFn: func(ctx context.Context, id int64) (*model.Rental, error) {
			return nil, sql.ErrNoRows
		},
	}
	s := newService(m, date(2024, 5, 10))

	_, err := s.Return(ctx, 404)
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestReturn_Twice(t *testing.T) {
	ctx := context.Background()
	closed := date(2024, 5, 13)
	m := &mockRepo{
		findFn: func(ctx context.Context, id int64) (*model.Rental, error) {
			return &model.Rental{
				ID: id, GameID: 2, RentDate: date(2024, 5, 10),
				DaysRented: 3, OriginalPrice: 30, ReturnDate: &closed,
			}, nil
		},
		closeFn: func(ctx context.Context, rentalID, gameID int64, returnDate model.Date, delayFee *float64) error {
			t.Fatal("closed rental must not be written")
			return nil
		},
	}
	s := newService(m, date(2024, 5, 14))

	_, err := s.Return(ctx, 1)
	require.Error(t, err)
	require.Equal(t, ErrAlreadyReturned, Code(err))
}

func TestReturn_CloseRaceLost(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		findFn: func(ctx context.Context, id int64) (*model.Rental, error) {
			return &model.Rental{
				ID: id, GameID: 2, RentDate: date(2024, 5, 10),
				DaysRented: 3, OriginalPrice: 30,
			}, nil
		},
		closeFn: func(ctx context.Context, rentalID, gameID int64, returnDate model.Date, delayFee *float64) error {
			return rentalrepo.ErrNotOpen
		},
	}
	s := newService(m, date(2024, 5, 13))

	_, err := s.Return(ctx, 1)
	require.Error(t, err)
	require.Equal(t, ErrAlreadyReturned, Code(err))
}

// --- delete ---

func TestDelete_Closed(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		deleteFn: func(ctx context.Context, id int64) error { return nil },
	}
	s := newService(m, date(2024, 5, 10))

	require.NoError(t, s.Delete(ctx, 1))
}

func TestDelete_StillOpen(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		deleteFn: func(ctx context.Context, id int64) error { return rentalrepo.ErrOpen },
	}
	s := newService(m, date(2024, 5, 10))

	err := s.Delete(ctx, 1)
	require.Error(t, err)
	require.Equal(t, ErrStillOpen, Code(err))
}

func TestDelete_NotFound(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		deleteFn: func(ctx context.Context, id int64) error { return sql.ErrNoRows },
	}
	s := newService(m, date(2024, 5, 10))

	err := s.Delete(ctx, 404)
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

// --- list ---

func TestList_PassesFilterThrough(t *testing.T) {
	ctx := context.Background()
	cid := int64(5)
	m := &mockRepo{
		listFn: func(ctx context.Context, f rentalrepo.Filter) ([]model.EnrichedRental, error) {
			require.NotNil(t, f.CustomerID)
			require.Equal(t, cid, *f.CustomerID)
			return []model.EnrichedRental{{}}, nil
		},
	}
	s := newService(m, date(2024, 5, 10))

	out, err := s.List(ctx, Filter{CustomerID: &cid})
	require.NoError(t, err)
	require.Len(t, out, 1)
}
