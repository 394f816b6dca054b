package category

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Type separa categorias de receita e despesa; define o sinal na DRE.
type Type string

const (
	TypeRevenue Type = "revenue"
	TypeExpense Type = "expense"
)

func (t Type) IsValid() bool {
	return t == TypeRevenue || t == TypeExpense
}

type Category struct {
	Id        ulid.ULID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
