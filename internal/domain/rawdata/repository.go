package rawdata

import (
	"context"

	"Demonstra/internal/domain/category"
	"Demonstra/internal/domain/indicator"
	"Demonstra/internal/pkg/query"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	List(ctx context.Context, filter Filter, page query.Page) (*query.Result[*RawData], error)
	GetByID(ctx context.Context, id ulid.ULID) (*RawData, error)
	Create(ctx context.Context, row *RawData) error
	// CreateBatch grava todas as linhas numa única transação.
	CreateBatch(ctx context.Context, rows []*RawData) error
	Delete(ctx context.Context, id ulid.ULID) error
}

type CategoryFinder interface {
	GetByCode(ctx context.Context, code string) (*category.Category, error)
	GetByID(ctx context.Context, id ulid.ULID) (*category.Category, error)
}

type IndicatorFinder interface {
	GetByCode(ctx context.Context, code string) (*indicator.Indicator, error)
	GetByID(ctx context.Context, id ulid.ULID) (*indicator.Indicator, error)
}
