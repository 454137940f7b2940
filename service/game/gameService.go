package gamesvc

import (
	"context"
	"errors"

	"boardcamp/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNameTaken        = errors.New("game name already exists")
	ErrCategoryNotFound = errors.New("category does not exist")
)

type Repo interface {
	Create(ctx context.Context, g *model.Game) (int64, error)
	List(ctx context.Context, namePrefix string) ([]model.GameWithCategory, error)
	CategoryExists(ctx context.Context, categoryID int64) (bool, error)
}

type Service interface {
	Create(ctx context.Context, g *model.Game) (int64, error)
	List(ctx context.Context, namePrefix string) ([]model.GameWithCategory, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, g *model.Game) (int64, error) {
	ok, err := s.r.CategoryExists(ctx, g.CategoryID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrCategoryNotFound
	}

	id, err := s.r.Create(ctx, g)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrNameTaken
		}
		return 0, err
	}
	return id, nil
}

func (s *service) List(ctx context.Context, namePrefix string) ([]model.GameWithCategory, error) {
	return s.r.List(ctx, namePrefix)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
