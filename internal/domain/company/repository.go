package company

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, company *Company) error
	Update(ctx context.Context, company *Company) error
	GetByID(ctx context.Context, id ulid.ULID) (*Company, error)
	List(ctx context.Context, activeOnly bool) ([]*Company, error)
}
