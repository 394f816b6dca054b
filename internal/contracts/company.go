package contracts

type CompanyCreateRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	TradingName string `json:"trading_name" binding:"omitempty,max=255"`
}

type CompanyUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	TradingName *string `json:"trading_name" binding:"omitempty,max=255"`
}

type CategoryRequest struct {
	Code string `json:"code" binding:"required,max=50"`
	Name string `json:"name" binding:"required,max=255"`
	Type string `json:"type" binding:"required,oneof=revenue expense"`
}
