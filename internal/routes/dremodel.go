package routes

import (
	"net/http"

	"Demonstra/internal/contracts"
	"Demonstra/internal/domain/dremodel"
	appErrors "Demonstra/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

func (h *Handler) ListModelAccounts(c *gin.Context) {
	visibleOnly := c.Query("visible") == "true"
	accounts, err := h.ModelService.ListAccounts(c.Request.Context(), visibleOnly)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (h *Handler) ModelStructure(c *gin.Context) {
	visibleOnly := c.Query("visible") == "true"
	structure, err := h.ModelService.Structure(c.Request.Context(), visibleOnly)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, structure)
}

func (h *Handler) saveModelAccount(c *gin.Context, id *ulid.ULID) {
	var body contracts.ModelAccountRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	account, err := h.ModelService.SaveAccount(c.Request.Context(), dremodel.AccountInput{
		Id:           id,
		Name:         body.Name,
		Kind:         dremodel.Kind(body.Kind),
		Symbol:       dremodel.Symbol(body.Symbol),
		Expression:   body.Expression,
		DefaultOrder: body.DefaultOrder,
		Visible:      body.Visible,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	status := http.StatusOK
	if id == nil {
		status = http.StatusCreated
	}
	c.JSON(status, account)
}

func (h *Handler) CreateModelAccount(c *gin.Context) {
	h.saveModelAccount(c, nil)
}

func (h *Handler) UpdateModelAccount(c *gin.Context) {
	id, err := parseParamID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.saveModelAccount(c, &id)
}

func (h *Handler) DeleteModelAccount(c *gin.Context) {
	id, err := parseParamID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.ModelService.DeleteAccount(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Conta do modelo removida com sucesso"})
}

func (h *Handler) ListSecondaryAccounts(c *gin.Context) {
	id, err := parseParamID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	secondaries, err := h.ModelService.ListSecondaries(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, secondaries)
}

func (h *Handler) saveSecondary(c *gin.Context, id *ulid.ULID) {
	var body contracts.SecondaryAccountRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	accountID, err := parseOptionalID("model_account_id", body.ModelAccountId)
	if err != nil {
		h.respondError(c, err)
		return
	}

	secondary, err := h.ModelService.SaveSecondary(c.Request.Context(), dremodel.SecondaryInput{
		Id:             id,
		ModelAccountId: *accountID,
		Name:           body.Name,
		Order:          body.Order,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	status := http.StatusOK
	if id == nil {
		status = http.StatusCreated
	}
	c.JSON(status, secondary)
}

func (h *Handler) CreateSecondaryAccount(c *gin.Context) {
	h.saveSecondary(c, nil)
}

func (h *Handler) UpdateSecondaryAccount(c *gin.Context) {
	id, err := parseParamID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.saveSecondary(c, &id)
}

func (h *Handler) DeleteSecondaryAccount(c *gin.Context) {
	id, err := parseParamID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.ModelService.DeleteSecondary(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Conta secundária removida com sucesso"})
}

func ownerFrom(modelAccountID, secondaryAccountID string) (dremodel.Owner, error) {
	accountID, err := parseOptionalID("model_account_id", modelAccountID)
	if err != nil {
		return dremodel.Owner{}, err
	}
	secondaryID, err := parseOptionalID("secondary_account_id", secondaryAccountID)
	if err != nil {
		return dremodel.Owner{}, err
	}
	return dremodel.Owner{ModelAccountId: accountID, SecondaryAccountId: secondaryID}, nil
}

// ListComponents exige model_account_id ou secondary_account_id na query.
func (h *Handler) ListComponents(c *gin.Context) {
	owner, err := ownerFrom(c.Query("model_account_id"), c.Query("secondary_account_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	components, err := h.ModelService.ListComponents(c.Request.Context(), owner)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, components)
}

func (h *Handler) saveComponent(c *gin.Context, id *ulid.ULID) {
	var body contracts.ComponentRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	owner, err := ownerFrom(body.ModelAccountId, body.SecondaryAccountId)
	if err != nil {
		h.respondError(c, err)
		return
	}
	referenceID, err := parseOptionalID("reference_id", body.ReferenceId)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var weight *decimal.Decimal
	if body.Weight != nil {
		w, err := decimal.NewFromString(*body.Weight)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("weight", "deve ser numérico"))
			return
		}
		weight = &w
	}

	component, err := h.ModelService.SaveComponent(c.Request.Context(), dremodel.ComponentInput{
		Id:            id,
		Owner:         owner,
		ReferenceType: dremodel.ReferenceType(body.ReferenceType),
		ReferenceId:   *referenceID,
		Weight:        weight,
		Order:         body.Order,
		DisplayName:   body.DisplayName,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	status := http.StatusOK
	if id == nil {
		status = http.StatusCreated
	}
	c.JSON(status, component)
}

func (h *Handler) CreateComponent(c *gin.Context) {
	h.saveComponent(c, nil)
}

func (h *Handler) UpdateComponent(c *gin.Context) {
	id, err := parseParamID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.saveComponent(c, &id)
}

func (h *Handler) DeleteComponent(c *gin.Context) {
	id, err := parseParamID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.ModelService.DeleteComponent(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Componente removido com sucesso"})
}
