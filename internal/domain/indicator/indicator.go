package indicator

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Type string

const (
	TypeManual     Type = "manual"
	TypeCalculated Type = "calculated"
)

func (t Type) IsValid() bool {
	return t == TypeManual || t == TypeCalculated
}

type Operation string

const (
	OperationSum      Operation = "sum"
	OperationSubtract Operation = "subtract"
	OperationMultiply Operation = "multiply"
	OperationDivide   Operation = "divide"
)

func (o Operation) IsValid() bool {
	switch o {
	case OperationSum, OperationSubtract, OperationMultiply, OperationDivide:
		return true
	}
	return false
}

// Basis indica de onde vêm as fontes de um indicador calculado.
type Basis string

const (
	BasisCategory  Basis = "category"
	BasisIndicator Basis = "indicator"
)

func (b Basis) IsValid() bool {
	return b == BasisCategory || b == BasisIndicator
}

type Indicator struct {
	Id               ulid.ULID   `json:"id"`
	Code             string      `json:"code"`
	Name             string      `json:"name"`
	Type             Type        `json:"type"`
	Operation        Operation   `json:"operation,omitempty"`
	CalculationBasis Basis       `json:"calculationBasis,omitempty"`
	SourceIds        []ulid.ULID `json:"sourceIds"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

type CompanyLink struct {
	IndicatorId ulid.ULID
	CompanyId   ulid.ULID
}

type IndicatorWithCompanies struct {
	*Indicator
	CompanyIds []ulid.ULID `json:"companyIds"`
}

func (i *IndicatorWithCompanies) ActiveFor(companyID ulid.ULID) bool {
	for _, id := range i.CompanyIds {
		if id == companyID {
			return true
		}
	}
	return false
}

// Filter aceita Type vazio ou "all" para todos os tipos.
type Filter struct {
	Search    string
	Type      Type
	CompanyId *ulid.ULID
}
