package contracts

type ModelAccountRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Kind         string `json:"kind" binding:"required,oneof=simples composta formula indicador soma_indicadores"`
	Symbol       string `json:"symbol" binding:"omitempty,dre_symbol"`
	Expression   string `json:"expression" binding:"omitempty"`
	DefaultOrder int    `json:"default_order" binding:"gte=0"`
	Visible      *bool  `json:"visible"`
}

type SecondaryAccountRequest struct {
	ModelAccountId string `json:"model_account_id" binding:"required,len=26"`
	Name           string `json:"name" binding:"required,max=255"`
	Order          int    `json:"order" binding:"gte=0"`
}

type ComponentRequest struct {
	ModelAccountId     string  `json:"model_account_id" binding:"omitempty,len=26"`
	SecondaryAccountId string  `json:"secondary_account_id" binding:"omitempty,len=26"`
	ReferenceType      string  `json:"reference_type" binding:"required,oneof=categoria indicador conta"`
	ReferenceId        string  `json:"reference_id" binding:"required,len=26"`
	Weight             *string `json:"weight" binding:"omitempty,numeric"`
	Order              int     `json:"order" binding:"gte=0"`
	DisplayName        string  `json:"display_name" binding:"omitempty,max=255"`
}
