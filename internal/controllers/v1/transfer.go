package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pouchbudget/backend/internal/httputil"
	"github.com/pouchbudget/backend/internal/models"
)

// TransferEditable represents all user configurable parameters
type TransferEditable struct {
	FromEnvelopeID uuid.UUID `json:"fromEnvelopeId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // ID of the envelope the money is taken from
	ToEnvelopeID   uuid.UUID `json:"toEnvelopeId" example:"45b6b5b9-f746-4ae9-b77b-7688b91f8166"`   // ID of the envelope the money goes to
	Amount         int64     `json:"amount" example:"5000" minimum:"1"`                             // Amount in minor currency units, must be positive
	Note           string    `json:"note" example:"Topping up the grocery money" default:""`       // A longer description
}

type TransferResponse struct {
	Data  []models.Allocation `json:"data"`                                                          // The two halves of the transfer
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/transfers [options]
func OptionsTransfer(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Transfer between envelopes
// @Description	Moves money between two envelopes of the budget. Writes a debit and a credit allocation that share a pair ID.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		201			{object}	TransferResponse
// @Failure		400			{object}	TransferResponse
// @Failure		404			{object}	TransferResponse
// @Failure		500			{object}	TransferResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transfer	body		TransferEditable	true	"Transfer"
// @Router			/v1/budgets/{id}/transfers [post]
func CreateTransfer(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferResponse{
			Error: &s,
		})
		return
	}

	var editable TransferEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferResponse{
			Error: &s,
		})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferResponse{
			Error: &s,
		})
		return
	}

	allocations, err := models.TransferBetweenEnvelopes(
		models.DB,
		budget.ID,
		editable.FromEnvelopeID,
		editable.ToEnvelopeID,
		editable.Amount,
		editable.Note,
	)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusCreated, TransferResponse{Data: allocations})
}
