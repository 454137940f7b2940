package customersvc

import (
	"context"
	"database/sql"
	"errors"

	"boardcamp/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound = errors.New("customer not found")
	ErrCPFTaken = errors.New("cpf already registered")
)

// Patch carries the fields of a partial update; nil means keep the
// current value.
type Patch struct {
	Name     *string
	Phone    *string
	CPF      *string
	Birthday *model.Date
}

type Repo interface {
	Create(ctx context.Context, c *model.Customer) (int64, error)
	Find(ctx context.Context, id int64) (*model.Customer, error)
	List(ctx context.Context, cpfPrefix string) ([]model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
	CPFTakenByOther(ctx context.Context, cpf string, id int64) (bool, error)
}

type Service interface {
	Create(ctx context.Context, c *model.Customer) (int64, error)
	Find(ctx context.Context, id int64) (*model.Customer, error)
	List(ctx context.Context, cpfPrefix string) ([]model.Customer, error)
	Update(ctx context.Context, id int64, p Patch) (*model.Customer, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, c *model.Customer) (int64, error) {
	id, err := s.r.Create(ctx, c)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrCPFTaken
		}
		return 0, err
	}
	return id, nil
}

func (s *service) Find(ctx context.Context, id int64) (*model.Customer, error) {
	c, err := s.r.Find(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *service) List(ctx context.Context, cpfPrefix string) ([]model.Customer, error) {
	return s.r.List(ctx, cpfPrefix)
}

// Update merges the patch over the stored record. A customer may keep
// their own cpf; colliding with another customer's cpf is rejected.
func (s *service) Update(ctx context.Context, id int64, p Patch) (*model.Customer, error) {
	c, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.CPF != nil {
		c.CPF = *p.CPF
	}
	if p.Birthday != nil {
		c.Birthday = *p.Birthday
	}

	taken, err := s.r.CPFTakenByOther(ctx, c.CPF, c.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrCPFTaken
	}

	if err := s.r.Update(ctx, c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		// Unique constraint is the backstop for concurrent updates.
		if isUniqueViolation(err) {
			return nil, ErrCPFTaken
		}
		return nil, err
	}
	return c, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
