package contracts

type CompanyAccountToggleRequest struct {
	Checked *bool `json:"checked" binding:"required"`
}

type CompanyAccountOrderRequest struct {
	Order int `json:"order" binding:"gte=0"`
}

type CompanyComponentToggleRequest struct {
	ModelAccountId     string `json:"model_account_id" binding:"omitempty,len=26"`
	SecondaryAccountId string `json:"secondary_account_id" binding:"omitempty,len=26"`
	ComponentId        string `json:"component_id" binding:"required,len=26"`
}

type CopyStructureRequest struct {
	TargetCompanyId string `json:"target_company_id" binding:"required,len=26"`
}
