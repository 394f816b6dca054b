package indicator

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, indicator *Indicator) error
	Update(ctx context.Context, indicator *Indicator) error
	GetByID(ctx context.Context, id ulid.ULID) (*Indicator, error)
	GetByCode(ctx context.Context, code string) (*Indicator, error)
	GetByIDs(ctx context.Context, ids []ulid.ULID) ([]*Indicator, error)
	List(ctx context.Context) ([]*Indicator, error)
	ListCompanyLinks(ctx context.Context) ([]CompanyLink, error)
	// ToggleCompany insere ou remove o vínculo e devolve o estado final.
	ToggleCompany(ctx context.Context, indicatorID, companyID ulid.ULID) (bool, error)
	// DeleteWithLinks remove o indicador e seus vínculos numa única transação.
	DeleteWithLinks(ctx context.Context, id ulid.ULID) error
}

// CategoryLookup é o recorte do repositório de categorias usado para validar fontes.
type CategoryLookup interface {
	CountByIDs(ctx context.Context, ids []ulid.ULID) (int64, error)
}
