package contracts

type AccountSaveRequest struct {
	CompanyId        string   `json:"company_id" binding:"omitempty,len=26"`
	Name             string   `json:"name" binding:"required,max=255"`
	FormType         string   `json:"type" binding:"required,oneof=category calculated total flex"`
	CategoryType     string   `json:"category_type" binding:"omitempty,oneof=revenue expense"`
	CategoryIds      []string `json:"category_ids" binding:"omitempty,dive,len=26"`
	IndicatorId      string   `json:"indicator_id" binding:"omitempty,len=26"`
	SelectedAccounts []string `json:"selected_accounts" binding:"omitempty,dive,len=26"`
	Sign             string   `json:"sign" binding:"omitempty,oneof=positive negative"`
	ParentAccountId  string   `json:"parent_account_id" binding:"omitempty,len=26"`
	ComponentId      string   `json:"component_id" binding:"omitempty,len=26"`
	CustomName       string   `json:"custom_name" binding:"omitempty,max=255"`
}

type AccountMoveRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

type AccountCompanyRequest struct {
	CompanyId string `json:"company_id" binding:"required,len=26"`
}

type AccountDeleteResponse struct {
	Deleted []string `json:"deleted"`
}

type AccountMoveResponse struct {
	Moved bool `json:"moved"`
}
