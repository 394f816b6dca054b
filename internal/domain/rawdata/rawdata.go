package rawdata

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// RawData é um lançamento bruto de uma empresa num mês, por categoria ou indicador.
type RawData struct {
	Id          ulid.ULID       `json:"id"`
	CompanyId   ulid.ULID       `json:"companyId"`
	CategoryId  *ulid.ULID      `json:"categoryId,omitempty"`
	IndicatorId *ulid.ULID      `json:"indicatorId,omitempty"`
	Value       decimal.Decimal `json:"value"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Filter usa zero em Month e Year para "qualquer".
type Filter struct {
	CompanyId ulid.ULID
	Month     int
	Year      int
}

type ImportResult struct {
	Inserted int `json:"inserted"`
}
