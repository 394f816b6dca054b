package company

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Company struct {
	Id          ulid.ULID `json:"id"`
	Name        string    `json:"name"`
	TradingName string    `json:"tradingName"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DisplayName prefere o nome fantasia, como nas telas de seleção.
func (c *Company) DisplayName() string {
	if c.TradingName != "" {
		return c.TradingName
	}
	return c.Name
}
