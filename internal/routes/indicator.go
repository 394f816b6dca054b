package routes

import (
	"net/http"

	"Demonstra/internal/contracts"
	"Demonstra/internal/domain/indicator"

	"github.com/gin-gonic/gin"
)

func indicatorInput(body contracts.IndicatorRequest) (indicator.IndicatorInput, error) {
	sources, err := parseIDList("source_ids", body.SourceIds)
	if err != nil {
		return indicator.IndicatorInput{}, err
	}
	return indicator.IndicatorInput{
		Code:             body.Code,
		Name:             body.Name,
		Type:             indicator.Type(body.Type),
		Operation:        indicator.Operation(body.Operation),
		CalculationBasis: indicator.Basis(body.CalculationBasis),
		SourceIds:        sources,
	}, nil
}

// ListIndicators aceita search, type (all|manual|calculated) e company_id opcionais.
func (h *Handler) ListIndicators(c *gin.Context) {
	filter := indicator.Filter{
		Search: c.Query("search"),
		Type:   indicator.Type(c.Query("type")),
	}

	if c.Query("company_id") != "" {
		companyID, err := h.companyFromQuery(c)
		if err != nil {
			h.respondError(c, err)
			return
		}
		filter.CompanyId = &companyID
	}

	indicators, err := h.IndicatorService.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, indicators)
}

func (h *Handler) CreateIndicator(c *gin.Context) {
	var body contracts.IndicatorRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	input, err := indicatorInput(body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	entity, err := h.IndicatorService.Create(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entity)
}

func (h *Handler) UpdateIndicator(c *gin.Context) {
	id, err := parseParamID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.IndicatorRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	input, err := indicatorInput(body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	entity, err := h.IndicatorService.Update(c.Request.Context(), id, input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

func (h *Handler) DeleteIndicator(c *gin.Context) {
	id, err := parseParamID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.IndicatorService.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Indicador removido com sucesso"})
}

func (h *Handler) ToggleIndicatorCompany(c *gin.Context) {
	id, err := parseParamID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.IndicatorCompanyRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	companyID, err := h.resolveCompany(c, body.CompanyId)
	if err != nil {
		h.respondError(c, err)
		return
	}

	active, err := h.IndicatorService.ToggleCompany(c.Request.Context(), id, companyID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts.ToggleResponse{Active: active})
}
