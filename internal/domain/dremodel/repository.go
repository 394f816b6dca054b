package dremodel

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	ListAccounts(ctx context.Context, visibleOnly bool) ([]*ModelAccount, error)
	GetAccount(ctx context.Context, id ulid.ULID) (*ModelAccount, error)
	CreateAccount(ctx context.Context, account *ModelAccount) error
	UpdateAccount(ctx context.Context, account *ModelAccount) error
	DeleteAccount(ctx context.Context, id ulid.ULID) error

	ListSecondaries(ctx context.Context, modelAccountID *ulid.ULID) ([]*SecondaryAccount, error)
	GetSecondary(ctx context.Context, id ulid.ULID) (*SecondaryAccount, error)
	CreateSecondary(ctx context.Context, secondary *SecondaryAccount) error
	UpdateSecondary(ctx context.Context, secondary *SecondaryAccount) error
	DeleteSecondary(ctx context.Context, id ulid.ULID) error

	// ListComponents filtra pelo dono; Owner vazio devolve todos.
	ListComponents(ctx context.Context, owner Owner) ([]*Component, error)
	GetComponent(ctx context.Context, id ulid.ULID) (*Component, error)
	CreateComponent(ctx context.Context, component *Component) error
	UpdateComponent(ctx context.Context, component *Component) error
	DeleteComponent(ctx context.Context, id ulid.ULID) error
}

// ReferenceChecker confirma que o alvo de um componente existe na tabela do seu tipo.
type ReferenceChecker interface {
	ReferenceExists(ctx context.Context, typ ReferenceType, id ulid.ULID) (bool, error)
}
