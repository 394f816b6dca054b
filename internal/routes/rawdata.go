package routes

import (
	"net/http"
	"strconv"

	"Demonstra/internal/contracts"
	"Demonstra/internal/domain/rawdata"
	appErrors "Demonstra/internal/errors"
	"Demonstra/internal/pkg/query"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const maxImportSize = 10 << 20

func (h *Handler) ListRawData(c *gin.Context) {
	companyID, err := h.companyFromQuery(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	month, _ := strconv.Atoi(c.DefaultQuery("month", "0"))
	year, _ := strconv.Atoi(c.DefaultQuery("year", "0"))

	result, err := h.RawDataService.List(c.Request.Context(), rawdata.Filter{
		CompanyId: companyID,
		Month:     month,
		Year:      year,
	}, query.ParsePageFromGin(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) CreateRawData(c *gin.Context) {
	var body contracts.RawDataCreateRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	companyID, err := h.resolveCompany(c, body.CompanyId)
	if err != nil {
		h.respondError(c, err)
		return
	}
	categoryID, err := parseOptionalID("category_id", body.CategoryId)
	if err != nil {
		h.respondError(c, err)
		return
	}
	indicatorID, err := parseOptionalID("indicator_id", body.IndicatorId)
	if err != nil {
		h.respondError(c, err)
		return
	}
	value, err := decimal.NewFromString(body.Value)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("value", "deve ser numérico"))
		return
	}

	row, err := h.RawDataService.Create(c.Request.Context(), rawdata.CreateInput{
		CompanyId:   companyID,
		CategoryId:  categoryID,
		IndicatorId: indicatorID,
		Value:       value,
		Month:       body.Month,
		Year:        body.Year,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *Handler) DeleteRawData(c *gin.Context) {
	companyID, err := h.companyFromQuery(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	id, err := parseParamID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.RawDataService.Delete(c.Request.Context(), companyID, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Lançamento removido com sucesso"})
}

// ImportRawData recebe multipart com o campo "file" (.csv, .txt ou .xlsx).
func (h *Handler) ImportRawData(c *gin.Context) {
	companyID, err := h.companyFromQuery(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)
	header, err := c.FormFile("file")
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("file", "é obrigatório").WithError(err))
		return
	}

	file, err := header.Open()
	if err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}
	defer file.Close()

	result, err := h.RawDataService.Import(c.Request.Context(), companyID, header.Filename, file)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
