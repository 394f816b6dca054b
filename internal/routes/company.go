package routes

import (
	"net/http"

	"Demonstra/internal/contracts"
	"Demonstra/internal/domain/category"
	"Demonstra/internal/domain/company"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListCompanies(c *gin.Context) {
	scope, err := h.scope(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	activeOnly := c.DefaultQuery("all", "false") != "true"
	companies, err := h.CompanyService.List(c.Request.Context(), activeOnly)
	if err != nil {
		h.respondError(c, err)
		return
	}

	visible := make([]*company.Company, 0, len(companies))
	for _, item := range companies {
		if scope.CanAccess(item.Id) {
			visible = append(visible, item)
		}
	}
	c.JSON(http.StatusOK, visible)
}

func (h *Handler) CreateCompany(c *gin.Context) {
	var body contracts.CompanyCreateRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	entity, err := h.CompanyService.Create(c.Request.Context(), company.CreateCompanyInput{
		Name:        body.Name,
		TradingName: body.TradingName,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entity)
}

func (h *Handler) UpdateCompany(c *gin.Context) {
	id, err := parseParamID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.CompanyUpdateRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	entity, err := h.CompanyService.Update(c.Request.Context(), id, company.UpdateCompanyInput{
		Name:        body.Name,
		TradingName: body.TradingName,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity)
}

func (h *Handler) ToggleCompanyActive(c *gin.Context) {
	id, err := parseParamID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	entity, err := h.CompanyService.ToggleActive(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List(c.Request.Context(), category.Type(c.Query("type")))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var body contracts.CategoryRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	entity, err := h.CategoryService.Create(c.Request.Context(), category.CategoryInput{
		Code: body.Code,
		Name: body.Name,
		Type: category.Type(body.Type),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entity)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := parseParamID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.CategoryRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	entity, err := h.CategoryService.Update(c.Request.Context(), id, category.CategoryInput{
		Code: body.Code,
		Name: body.Name,
		Type: category.Type(body.Type),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := parseParamID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.CategoryService.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Categoria removida com sucesso"})
}
