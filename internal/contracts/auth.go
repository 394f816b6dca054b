package contracts

import "time"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

type UserCreateRequest struct {
	Name                  string `json:"name" binding:"required"`
	Email                 string `json:"email" binding:"required,email"`
	Password              string `json:"password" binding:"required,min=8"`
	Role                  string `json:"role" binding:"omitempty,oneof=admin user"`
	CompanyId             string `json:"company_id" binding:"omitempty,len=26"`
	HasAllCompaniesAccess bool   `json:"has_all_companies_access"`
}

type UserActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type UserResponse struct {
	Id                    string  `json:"id"`
	Name                  string  `json:"name"`
	Email                 string  `json:"email"`
	Role                  string  `json:"role"`
	CompanyId             *string `json:"companyId,omitempty"`
	HasAllCompaniesAccess bool    `json:"hasAllCompaniesAccess"`
	IsActive              bool    `json:"isActive"`
}
