package companyconfig

import (
	"context"

	"Demonstra/internal/domain/dremodel"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	ListAccounts(ctx context.Context, companyID ulid.ULID) ([]*CompanyAccount, error)
	// FindAccount devolve nil sem erro quando a empresa não tem linha para a conta.
	FindAccount(ctx context.Context, companyID, modelAccountID ulid.ULID) (*CompanyAccount, error)
	CreateAccount(ctx context.Context, account *CompanyAccount) error
	UpdateAccount(ctx context.Context, account *CompanyAccount) error
	ListComponents(ctx context.Context, companyID ulid.ULID) ([]*CompanyComponent, error)
	// ToggleComponent insere a seleção ou a remove se já existir; devolve o estado final.
	ToggleComponent(ctx context.Context, selection *CompanyComponent) (bool, error)
	// ReplaceStructure apaga tudo da empresa e grava as cópias numa única transação.
	ReplaceStructure(ctx context.Context, companyID ulid.ULID, accounts []*CompanyAccount, components []*CompanyComponent) error
}

type ModelReader interface {
	GetAccount(ctx context.Context, id ulid.ULID) (*dremodel.ModelAccount, error)
	GetComponent(ctx context.Context, id ulid.ULID) (*dremodel.Component, error)
	Structure(ctx context.Context, visibleOnly bool) ([]*dremodel.StructureNode, error)
}
