package contracts

type IndicatorRequest struct {
	Code             string   `json:"code" binding:"required,max=50"`
	Name             string   `json:"name" binding:"required,max=255"`
	Type             string   `json:"type" binding:"required,oneof=manual calculated"`
	Operation        string   `json:"operation" binding:"omitempty,oneof=sum subtract multiply divide"`
	CalculationBasis string   `json:"calculation_basis" binding:"omitempty,oneof=category indicator"`
	SourceIds        []string `json:"source_ids" binding:"omitempty,dive,len=26"`
}

type IndicatorCompanyRequest struct {
	CompanyId string `json:"company_id" binding:"required,len=26"`
}
