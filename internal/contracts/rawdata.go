package contracts

type RawDataCreateRequest struct {
	CompanyId   string `json:"company_id" binding:"omitempty,len=26"`
	CategoryId  string `json:"category_id" binding:"omitempty,len=26"`
	IndicatorId string `json:"indicator_id" binding:"omitempty,len=26"`
	Value       string `json:"value" binding:"required"`
	Month       int    `json:"month" binding:"required,dre_month"`
	Year        int    `json:"year" binding:"required,gte=1900,lte=2999"`
}

type ReportQuery struct {
	CompanyId string `form:"company_id" binding:"omitempty,len=26"`
	Month     int    `form:"month" binding:"required,dre_month"`
	Year      int    `form:"year" binding:"required,gte=1900,lte=2999"`
}
