package categorysvc

import (
	"context"
	"errors"

	"boardcamp/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNameTaken = errors.New("category name already exists")

type Repo interface {
	Create(ctx context.Context, name string) (int64, error)
	List(ctx context.Context) ([]model.Category, error)
}

type Service interface {
	Create(ctx context.Context, name string) (int64, error)
	List(ctx context.Context) ([]model.Category, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, name string) (int64, error) {
	id, err := s.r.Create(ctx, name)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrNameTaken
		}
		return 0, err
	}
	return id, nil
}

func (s *service) List(ctx context.Context) ([]model.Category, error) {
	return s.r.List(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
