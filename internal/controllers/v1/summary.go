package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pouchbudget/backend/internal/httputil"
	"github.com/pouchbudget/backend/internal/models"
)

type SummaryResponse struct {
	Data  *models.EnvelopeSummary `json:"data"`                                                          // The headline figures of the budget
	Error *string                 `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetSummaryResponse struct {
	Data  *models.BudgetSummary `json:"data"`                                                          // The aggregate for the requested window
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ActivityResponse struct {
	Data  []models.ActivityLine `json:"data"`                                                          // Activity lines, newest first
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/summary [options]
func OptionsSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Budget headline figures
// @Description	Returns the amount ready to assign and the unfunded credit card debt
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	SummaryResponse
// @Failure		400	{object}	SummaryResponse
// @Failure		404	{object}	SummaryResponse
// @Failure		500	{object}	SummaryResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/summary [get]
func GetSummary(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	summary, err := budget.Summary(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Data: &summary})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/budget-summary [options]
func OptionsBudgetSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Budget summary
// @Description	Returns the budget aggregated over a date window, grouped by envelope groups
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	BudgetSummaryResponse
// @Failure		400		{object}	BudgetSummaryResponse
// @Failure		404		{object}	BudgetSummaryResponse
// @Failure		500		{object}	BudgetSummaryResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			from	query		string	true	"Start of the window (YYYY-MM-DD), inclusive"
// @Param			until	query		string	true	"End of the window (YYYY-MM-DD), inclusive"
// @Router			/v1/budgets/{id}/budget-summary [get]
func GetBudgetSummary(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetSummaryResponse{
			Error: &s,
		})
		return
	}

	var query QueryDateRange
	if err := c.Bind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BudgetSummaryResponse{
			Error: &s,
		})
		return
	}

	if err := query.validate(); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BudgetSummaryResponse{
			Error: &s,
		})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetSummaryResponse{
			Error: &s,
		})
		return
	}

	summary, err := budget.BudgetSummary(models.DB, query.From, query.Until)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetSummaryResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, BudgetSummaryResponse{Data: &summary})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Param			id			path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			envelopeId	path	string	true	"ID of the envelope"
// @Router			/v1/budgets/{id}/envelopes/{envelopeId}/activity [options]
func OptionsEnvelopeActivity(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Envelope activity
// @Description	Returns the transactions and transfers of the envelope within a date window, newest first
// @Tags			Budgets
// @Produce		json
// @Success		200			{object}	ActivityResponse
// @Failure		400			{object}	ActivityResponse
// @Failure		404			{object}	ActivityResponse
// @Failure		500			{object}	ActivityResponse
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			envelopeId	path		string	true	"ID of the envelope"
// @Param			from		query		string	true	"Start of the window (YYYY-MM-DD), inclusive"
// @Param			until		query		string	true	"End of the window (YYYY-MM-DD), inclusive"
// @Router			/v1/budgets/{id}/envelopes/{envelopeId}/activity [get]
func GetEnvelopeActivity(c *gin.Context) {
	var uri URIEnvelope
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ActivityResponse{
			Error: &s,
		})
		return
	}

	var query QueryDateRange
	if err := c.Bind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ActivityResponse{
			Error: &s,
		})
		return
	}

	if err := query.validate(); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ActivityResponse{
			Error: &s,
		})
		return
	}

	var envelope models.Envelope
	err = models.DB.
		Where("budget_id = ?", uri.ID.UUID).
		First(&envelope, uri.EnvelopeID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ActivityResponse{
			Error: &s,
		})
		return
	}

	lines, err := envelope.ActivityLines(models.DB, query.From, query.Until)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ActivityResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ActivityResponse{Data: lines})
}
