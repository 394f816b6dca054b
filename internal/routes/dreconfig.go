package routes

import (
	"net/http"
	"strings"

	"Demonstra/internal/contracts"
	"Demonstra/internal/domain/category"
	"Demonstra/internal/domain/dreconfig"
	"Demonstra/internal/pkg"

	"github.com/gin-gonic/gin"
)

// expandedFromQuery lê expanded=id1,id2 ou expanded=all.
func expandedFromQuery(c *gin.Context, tree *dreconfig.Tree) (dreconfig.ExpandedSet, error) {
	raw := strings.TrimSpace(c.Query("expanded"))
	if raw == "all" {
		set := dreconfig.NewExpandedSet()
		tree.Walk(func(a *dreconfig.Account, _ int) {
			set.Toggle(a.Id)
		})
		return set, nil
	}
	if raw == "" {
		return dreconfig.NewExpandedSet(), nil
	}
	ids, err := parseIDList("expanded", strings.Split(raw, ","))
	if err != nil {
		return nil, err
	}
	return dreconfig.NewExpandedSet(ids...), nil
}

func (h *Handler) AccountTree(c *gin.Context) {
	companyID, err := h.companyFromQuery(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	tree, err := h.AccountService.TreeForCompany(c.Request.Context(), companyID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	expanded, err := expandedFromQuery(c, tree)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tree.Render(expanded))
}

func saveInput(body contracts.AccountSaveRequest) (dreconfig.SaveInput, error) {
	var in dreconfig.SaveInput

	categoryIDs, err := parseIDList("category_ids", body.CategoryIds)
	if err != nil {
		return in, err
	}
	selected, err := parseIDList("selected_accounts", body.SelectedAccounts)
	if err != nil {
		return in, err
	}
	indicatorID, err := parseOptionalID("indicator_id", body.IndicatorId)
	if err != nil {
		return in, err
	}
	parentID, err := parseOptionalID("parent_account_id", body.ParentAccountId)
	if err != nil {
		return in, err
	}
	componentID, err := parseOptionalID("component_id", body.ComponentId)
	if err != nil {
		return in, err
	}

	return dreconfig.SaveInput{
		Name:             body.Name,
		FormType:         dreconfig.FormType(body.FormType),
		CategoryType:     category.Type(body.CategoryType),
		CategoryIds:      categoryIDs,
		IndicatorId:      indicatorID,
		SelectedAccounts: selected,
		Sign:             dreconfig.Sign(body.Sign),
		ParentAccountId:  parentID,
		ComponentId:      componentID,
		CustomName:       body.CustomName,
	}, nil
}

func (h *Handler) CreateAccount(c *gin.Context) {
	var body contracts.AccountSaveRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	companyID, err := h.resolveCompany(c, body.CompanyId)
	if err != nil {
		h.respondError(c, err)
		return
	}

	in, err := saveInput(body)
	if err != nil {
		h.respondError(c, err)
		return
	}
	in.CompanyId = &companyID

	scope, err := h.scope(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	account, err := h.AccountService.Save(c.Request.Context(), scope, in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *Handler) UpdateAccount(c *gin.Context) {
	id, err := parseParamID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	scope, err := h.scope(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.AccountSaveRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	in, err := saveInput(body)
	if err != nil {
		h.respondError(c, err)
		return
	}
	in.Id = &id

	account, err := h.AccountService.Save(c.Request.Context(), scope, in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	id, err := parseParamID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	scope, err := h.scope(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	removed, err := h.AccountService.Delete(c.Request.Context(), scope, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts.AccountDeleteResponse{Deleted: pkg.ULIDStrings(removed...)})
}

func (h *Handler) MoveAccount(c *gin.Context) {
	id, err := parseParamID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	companyID, err := h.companyFromQuery(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.AccountMoveRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	moved, err := h.AccountService.Move(c.Request.Context(), companyID, id, dreconfig.Direction(body.Direction))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts.AccountMoveResponse{Moved: moved})
}

func (h *Handler) ToggleAccountActive(c *gin.Context) {
	id, err := parseParamID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	scope, err := h.scope(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	account, err := h.AccountService.ToggleActive(c.Request.Context(), scope, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *Handler) ToggleAccountCompany(c *gin.Context) {
	id, err := parseParamID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.AccountCompanyRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	companyID, err := h.resolveCompany(c, body.CompanyId)
	if err != nil {
		h.respondError(c, err)
		return
	}

	linked, err := h.AccountService.ToggleCompany(c.Request.Context(), id, companyID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts.ToggleResponse{Active: linked})
}

func (h *Handler) ListAccountCompanies(c *gin.Context) {
	id, err := parseParamID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	scope, err := h.scope(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ids, err := h.AccountService.ListCompanies(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkg.ULIDStrings(scope.Filter(ids)...))
}

