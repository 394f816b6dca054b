package category

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id ulid.ULID) error
	GetByID(ctx context.Context, id ulid.ULID) (*Category, error)
	GetByCode(ctx context.Context, code string) (*Category, error)
	GetByIDs(ctx context.Context, ids []ulid.ULID) ([]*Category, error)
	List(ctx context.Context, typ Type) ([]*Category, error)
}
