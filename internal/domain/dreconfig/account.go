package dreconfig

import (
	"time"

	"Demonstra/internal/domain/category"

	"github.com/oklog/ulid/v2"
)

type AccountType string

const (
	TypeRevenue    AccountType = "revenue"
	TypeExpense    AccountType = "expense"
	TypeTotal      AccountType = "total"
	TypeFlex       AccountType = "flex"
	TypeCalculated AccountType = "calculated"
)

func (t AccountType) IsValid() bool {
	switch t {
	case TypeRevenue, TypeExpense, TypeTotal, TypeFlex, TypeCalculated:
		return true
	}
	return false
}

// Referenceable informa se a conta pode compor uma conta total.
func (t AccountType) Referenceable() bool {
	return t != TypeTotal && t != TypeFlex
}

type Sign string

const (
	SignPositive Sign = "positive"
	SignNegative Sign = "negative"
)

func (s Sign) IsValid() bool {
	return s == SignPositive || s == SignNegative
}

type Account struct {
	Id               ulid.ULID   `json:"id"`
	Name             string      `json:"name"`
	Type             AccountType `json:"type"`
	Sign             Sign        `json:"sign,omitempty"`
	ParentAccountId  *ulid.ULID  `json:"parentAccountId,omitempty"`
	DisplayOrder     int         `json:"displayOrder"`
	IsActive         bool        `json:"isActive"`
	CategoryIds      []ulid.ULID `json:"categoryIds"`
	IndicatorId      *ulid.ULID  `json:"indicatorId,omitempty"`
	SelectedAccounts []ulid.ULID `json:"selectedAccounts"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

type AccountCompany struct {
	Id        ulid.ULID `json:"id"`
	AccountId ulid.ULID `json:"accountId"`
	CompanyId ulid.ULID `json:"companyId"`
	IsActive  bool      `json:"isActive"`
}

// FormType é o tipo escolhido no formulário; "category" vira revenue ou expense ao salvar.
type FormType string

const (
	FormCategory   FormType = "category"
	FormCalculated FormType = "calculated"
	FormTotal      FormType = "total"
	FormFlex       FormType = "flex"
)

func (f FormType) IsValid() bool {
	switch f {
	case FormCategory, FormCalculated, FormTotal, FormFlex:
		return true
	}
	return false
}

func accountTypeFor(form FormType, sub category.Type) AccountType {
	switch form {
	case FormCategory:
		if sub == category.TypeExpense {
			return TypeExpense
		}
		return TypeRevenue
	case FormCalculated:
		return TypeCalculated
	case FormTotal:
		return TypeTotal
	default:
		return TypeFlex
	}
}

// ComponentRename grava um nome de exibição no componente junto com a conta.
type ComponentRename struct {
	ComponentId ulid.ULID
	DisplayName string
}
