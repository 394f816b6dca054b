package routes

import (
	"bytes"
	"fmt"
	"net/http"

	"Demonstra/internal/contracts"
	"Demonstra/internal/domain/dre"
	appErrors "Demonstra/internal/errors"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) buildReport(c *gin.Context) (*dre.Report, error) {
	var q contracts.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return nil, appErrors.ParseValidationErrors(err)
	}

	companyID, err := h.resolveCompany(c, q.CompanyId)
	if err != nil {
		return nil, err
	}

	return h.ReportService.Report(c.Request.Context(), companyID, q.Month, q.Year)
}

// GetReport devolve a DRE dos 12 meses terminados em month/year.
func (h *Handler) GetReport(c *gin.Context) {
	report, err := h.buildReport(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) ExportReport(c *gin.Context) {
	report, err := h.buildReport(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	title := fmt.Sprintf("DRE %s", report.Reference.Label())
	if company, err := h.CompanyService.GetByID(c.Request.Context(), report.CompanyId); err == nil {
		title = fmt.Sprintf("DRE %s - %s", company.DisplayName(), report.Reference.Label())
	}

	var buf bytes.Buffer
	if err := dre.WriteXLSX(&buf, report, title); err != nil {
		h.respondError(c, appErrors.ErrInternalServer.WithError(err))
		return
	}

	filename := fmt.Sprintf("dre-%04d-%02d.xlsx", report.Reference.Year, report.Reference.Month)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
