package routes

import (
	"net/http"

	"Demonstra/internal/contracts"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CompanyStructure(c *gin.Context) {
	companyID, err := h.resolveCompany(c, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	visibleOnly := c.Query("visible") == "true"
	nodes, err := h.CompanyConfigService.Tree(c.Request.Context(), companyID, visibleOnly)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nodes)
}

func (h *Handler) ToggleCompanyAccount(c *gin.Context) {
	companyID, err := h.resolveCompany(c, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	accountID, err := parseParamID(c, "account_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.CompanyAccountToggleRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	row, err := h.CompanyConfigService.ToggleAccount(c.Request.Context(), companyID, accountID, *body.Checked)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if row == nil {
		c.JSON(http.StatusOK, contracts.ToggleResponse{Active: false})
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *Handler) SetCompanyAccountOrder(c *gin.Context) {
	companyID, err := h.resolveCompany(c, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	accountID, err := parseParamID(c, "account_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.CompanyAccountOrderRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	row, err := h.CompanyConfigService.SetAccountOrder(c.Request.Context(), companyID, accountID, body.Order)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *Handler) ToggleCompanyComponent(c *gin.Context) {
	companyID, err := h.resolveCompany(c, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.CompanyComponentToggleRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	owner, err := ownerFrom(body.ModelAccountId, body.SecondaryAccountId)
	if err != nil {
		h.respondError(c, err)
		return
	}
	componentID, err := parseOptionalID("component_id", body.ComponentId)
	if err != nil {
		h.respondError(c, err)
		return
	}

	checked, err := h.CompanyConfigService.ToggleComponent(c.Request.Context(), companyID, owner, *componentID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts.ToggleResponse{Active: checked})
}

// CopyCompanyStructure exige acesso às duas empresas.
func (h *Handler) CopyCompanyStructure(c *gin.Context) {
	from, err := h.resolveCompany(c, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.CopyStructureRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	to, err := h.resolveCompany(c, body.TargetCompanyId)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.CompanyConfigService.CopyStructure(c.Request.Context(), from, to)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
