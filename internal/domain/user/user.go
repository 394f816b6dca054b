package user

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	Id                    ulid.ULID  `json:"id"`
	Name                  string     `json:"name"`
	Email                 string     `json:"email"`
	Password              string     `json:"-"`
	Role                  Role       `json:"role"`
	CompanyId             *ulid.ULID `json:"companyId,omitempty"`
	HasAllCompaniesAccess bool       `json:"hasAllCompaniesAccess"`
	IsActive              bool       `json:"isActive"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}
