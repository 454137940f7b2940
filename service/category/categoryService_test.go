package categorysvc_test

import (
	"context"
	"testing"

	"boardcamp/model"
	categorysvc "boardcamp/service/category"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type repoMock struct {
	createFn func(ctx context.Context, name string) (int64, error)
	listFn   func(ctx context.Context) ([]model.Category, error)
}

func (m *repoMock) Create(ctx context.Context, name string) (int64, error) {
	return m.createFn(ctx, name)
}
func (m *repoMock) List(ctx context.Context) ([]model.Category, error) {
	return m.listFn(ctx)
}

func TestCreate_DuplicateName(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, name string) (int64, error) {
			return 0, &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "categories_name_key"}
		},
	}
	s := categorysvc.New(m)
	_, err := s.Create(context.Background(), "strategy")
	if err != categorysvc.ErrNameTaken {
		t.Fatalf("got %v; want ErrNameTaken", err)
	}
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, name string) (int64, error) {
			if name != "strategy" {
				t.Fatalf("got name %q", name)
			}
			return 3, nil
		},
	}
	s := categorysvc.New(m)
	id, err := s.Create(context.Background(), "strategy")
	if err != nil || id != 3 {
		t.Fatalf("got id=%v err=%v; want 3 nil", id, err)
	}
}
