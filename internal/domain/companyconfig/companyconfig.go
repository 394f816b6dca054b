package companyconfig

import (
	"Demonstra/internal/domain/dremodel"

	"github.com/oklog/ulid/v2"
)

// CompanyAccount é a sobreposição de visibilidade e ordem de uma conta do modelo para a empresa.
type CompanyAccount struct {
	Id             ulid.ULID `json:"id"`
	CompanyId      ulid.ULID `json:"companyId"`
	ModelAccountId ulid.ULID `json:"modelAccountId"`
	Order          int       `json:"order"`
	Visible        bool      `json:"visible"`
}

// CompanyComponent marca um componente como selecionado para a empresa sob um dono.
type CompanyComponent struct {
	Id                 ulid.ULID  `json:"id"`
	CompanyId          ulid.ULID  `json:"companyId"`
	ModelAccountId     *ulid.ULID `json:"modelAccountId,omitempty"`
	SecondaryAccountId *ulid.ULID `json:"secondaryAccountId,omitempty"`
	ComponentId        ulid.ULID  `json:"componentId"`
}

// Key identifica a seleção independentemente do id da linha.
func (c *CompanyComponent) Key() string {
	key := c.ComponentId.String()
	if c.ModelAccountId != nil {
		key += "|a:" + c.ModelAccountId.String()
	}
	if c.SecondaryAccountId != nil {
		key += "|s:" + c.SecondaryAccountId.String()
	}
	return key
}

type ComponentNode struct {
	Component *dremodel.Component `json:"component"`
	Checked   bool                `json:"checked"`
}

type SecondaryNode struct {
	Account    *dremodel.SecondaryAccount `json:"account"`
	Components []ComponentNode            `json:"components"`
}

type AccountNode struct {
	Account     *dremodel.ModelAccount `json:"account"`
	Checked     bool                   `json:"checked"`
	Order       int                    `json:"order"`
	Components  []ComponentNode        `json:"components"`
	Secondaries []SecondaryNode        `json:"secondaries"`
}

type CopyResult struct {
	Accounts   int `json:"accounts"`
	Components int `json:"components"`
}
