package dremodel

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindSimple         Kind = "simples"
	KindComposite      Kind = "composta"
	KindFormula        Kind = "formula"
	KindIndicator      Kind = "indicador"
	KindIndicatorTotal Kind = "soma_indicadores"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindSimple, KindComposite, KindFormula, KindIndicator, KindIndicatorTotal:
		return true
	}
	return false
}

// Symbol é o sinal de exibição da conta: "+" receita, "-" dedução, "=" resultado.
type Symbol string

const (
	SymbolPlus   Symbol = "+"
	SymbolMinus  Symbol = "-"
	SymbolEquals Symbol = "="
)

func (s Symbol) IsValid() bool {
	return s == SymbolPlus || s == SymbolMinus || s == SymbolEquals
}

type ModelAccount struct {
	Id           ulid.ULID `json:"id"`
	Name         string    `json:"name"`
	Kind         Kind      `json:"kind"`
	Symbol       Symbol    `json:"symbol"`
	Expression   string    `json:"expression,omitempty"`
	DefaultOrder int       `json:"defaultOrder"`
	Visible      bool      `json:"visible"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type SecondaryAccount struct {
	Id             ulid.ULID `json:"id"`
	ModelAccountId ulid.ULID `json:"modelAccountId"`
	Name           string    `json:"name"`
	Order          int       `json:"order"`
}

type ReferenceType string

const (
	ReferenceCategory  ReferenceType = "categoria"
	ReferenceIndicator ReferenceType = "indicador"
	ReferenceAccount   ReferenceType = "conta"
)

func (r ReferenceType) IsValid() bool {
	return r == ReferenceCategory || r == ReferenceIndicator || r == ReferenceAccount
}

// Component liga uma conta do modelo ou uma conta secundária (exatamente uma) a uma referência.
type Component struct {
	Id                 ulid.ULID       `json:"id"`
	ModelAccountId     *ulid.ULID      `json:"modelAccountId,omitempty"`
	SecondaryAccountId *ulid.ULID      `json:"secondaryAccountId,omitempty"`
	ReferenceType      ReferenceType   `json:"referenceType"`
	ReferenceId        ulid.ULID       `json:"referenceId"`
	Weight             decimal.Decimal `json:"weight"`
	Order              int             `json:"order"`
	DisplayName        string          `json:"displayName,omitempty"`
}

// Owner identifica o dono de um componente.
type Owner struct {
	ModelAccountId     *ulid.ULID
	SecondaryAccountId *ulid.ULID
}

func (o Owner) Valid() bool {
	return (o.ModelAccountId == nil) != (o.SecondaryAccountId == nil)
}

func (c *Component) Owner() Owner {
	return Owner{ModelAccountId: c.ModelAccountId, SecondaryAccountId: c.SecondaryAccountId}
}

// Owns informa se o componente pertence ao dono informado.
func (c *Component) Owns(o Owner) bool {
	switch {
	case o.ModelAccountId != nil:
		return c.ModelAccountId != nil && *c.ModelAccountId == *o.ModelAccountId
	case o.SecondaryAccountId != nil:
		return c.SecondaryAccountId != nil && *c.SecondaryAccountId == *o.SecondaryAccountId
	}
	return false
}

// StructureNode é uma conta do modelo com suas secundárias e componentes.
type StructureNode struct {
	Account     *ModelAccount    `json:"account"`
	Components  []*Component     `json:"components"`
	Secondaries []*SecondaryNode `json:"secondaries"`
}

type SecondaryNode struct {
	Account    *SecondaryAccount `json:"account"`
	Components []*Component      `json:"components"`
}
