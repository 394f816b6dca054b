package user

import (
	appErrors "Demonstra/internal/errors"

	"github.com/oklog/ulid/v2"
)

// Scope é o contexto de autorização de uma requisição: perfil e empresas alcançáveis.
type Scope struct {
	UserID       ulid.ULID
	Role         Role
	CompanyID    *ulid.ULID
	AllCompanies bool
}

func ScopeFor(u *User) Scope {
	return Scope{
		UserID:       u.Id,
		Role:         u.Role,
		CompanyID:    u.CompanyId,
		AllCompanies: u.HasAllCompaniesAccess,
	}
}

func (s Scope) IsAdmin() bool {
	return s.Role == RoleAdmin
}

func (s Scope) CanAccess(companyID ulid.ULID) bool {
	if s.AllCompanies {
		return true
	}
	return s.CompanyID != nil && *s.CompanyID == companyID
}

// Resolve escolhe a empresa efetiva: sem pedido explícito, usa a empresa do usuário;
// com pedido, exige que esteja no escopo.
func (s Scope) Resolve(requested *ulid.ULID) (ulid.ULID, error) {
	if requested == nil {
		if !s.AllCompanies && s.CompanyID != nil {
			return *s.CompanyID, nil
		}
		return ulid.ULID{}, appErrors.ErrCompanyRequired
	}
	if !s.CanAccess(*requested) {
		return ulid.ULID{}, appErrors.ErrCompanyOutOfScope.WithDetails(map[string]interface{}{
			"company_id": requested.String(),
		})
	}
	return *requested, nil
}

// Filter reduz uma lista de ids de empresa ao que o escopo alcança.
func (s Scope) Filter(ids []ulid.ULID) []ulid.ULID {
	if s.AllCompanies {
		return ids
	}
	out := make([]ulid.ULID, 0, 1)
	for _, id := range ids {
		if s.CanAccess(id) {
			out = append(out, id)
		}
	}
	return out
}
