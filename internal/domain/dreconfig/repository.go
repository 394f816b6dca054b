package dreconfig

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	// Create grava a conta e o vínculo com a empresa na mesma transação.
	Create(ctx context.Context, account *Account, companyID ulid.ULID, rename *ComponentRename) error
	Update(ctx context.Context, account *Account, rename *ComponentRename) error
	GetByID(ctx context.Context, id ulid.ULID) (*Account, error)
	GetByIDs(ctx context.Context, ids []ulid.ULID) ([]*Account, error)
	ListAll(ctx context.Context) ([]*Account, error)
	ListByCompany(ctx context.Context, companyID ulid.ULID) ([]*Account, error)
	CountByCompany(ctx context.Context, companyID ulid.ULID) (int64, error)
	// DeleteCascade remove as contas e seus vínculos numa única transação.
	DeleteCascade(ctx context.Context, ids []ulid.ULID) error
	SwapOrder(ctx context.Context, a, b *Account) error
	SetActive(ctx context.Context, id ulid.ULID, active bool) error
	ToggleCompany(ctx context.Context, accountID, companyID ulid.ULID) (bool, error)
	ListCompanyIDs(ctx context.Context, accountID ulid.ULID) ([]ulid.ULID, error)
}
