package dre

import (
	"context"

	"Demonstra/internal/domain/dremodel"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	// ListEntries devolve os lançamentos da empresa entre from e to (inclusive), com o tipo da categoria.
	ListEntries(ctx context.Context, companyID ulid.ULID, from, to Period) ([]Entry, error)
}

type AccountLister interface {
	ListAccounts(ctx context.Context, visibleOnly bool) ([]*dremodel.ModelAccount, error)
}
