package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pouchbudget/backend/internal/models"
	ez_uuid "github.com/pouchbudget/backend/internal/uuid"
)

// EnvelopeGroupEditable represents all user configurable parameters
type EnvelopeGroupEditable struct {
	Name      string    `json:"name" example:"Everyday Expenses" default:""`             // Name of the envelope group
	BudgetID  uuid.UUID `json:"budgetId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // ID of the budget the envelope group belongs to
	Icon      string    `json:"icon" example:"🛒" default:""`                             // Icon shown next to the name
	SortOrder uint      `json:"sortOrder" example:"20" default:"0"`                      // Position in the group list, 0 if not yet ordered
}

func (editable EnvelopeGroupEditable) model() models.EnvelopeGroup {
	return models.EnvelopeGroup{
		Name:      editable.Name,
		BudgetID:  editable.BudgetID,
		Icon:      editable.Icon,
		SortOrder: editable.SortOrder,
	}
}

type EnvelopeGroupLinks struct {
	Self      string `json:"self" example:"https://example.com/v1/envelope-groups/3b1ea324-d438-4419-882a-2fc91d71772f"`              // The envelope group itself
	Envelopes string `json:"envelopes" example:"https://example.com/v1/envelopes?group=3b1ea324-d438-4419-882a-2fc91d71772f"` // Envelopes in this group
}

type EnvelopeGroup struct {
	models.DefaultModel
	EnvelopeGroupEditable
	Links EnvelopeGroupLinks `json:"links"`
}

func newEnvelopeGroup(c *gin.Context, model models.EnvelopeGroup) EnvelopeGroup {
	url := c.GetString(string(models.DBContextURL))

	return EnvelopeGroup{
		DefaultModel: model.DefaultModel,
		EnvelopeGroupEditable: EnvelopeGroupEditable{
			Name:      model.Name,
			BudgetID:  model.BudgetID,
			Icon:      model.Icon,
			SortOrder: model.SortOrder,
		},
		Links: EnvelopeGroupLinks{
			Self:      fmt.Sprintf("%s/v1/envelope-groups/%s", url, model.ID),
			Envelopes: fmt.Sprintf("%s/v1/envelopes?group=%s", url, model.ID),
		},
	}
}

type EnvelopeGroupListResponse struct {
	Data       []EnvelopeGroup `json:"data"`                                                          // List of envelope groups
	Error      *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination     `json:"pagination"`                                                    // Pagination information
}

type EnvelopeGroupCreateResponse struct {
	Data  []EnvelopeGroupResponse `json:"data"`                                                          // List of the created envelope groups or their respective error
	Error *string                 `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (g *EnvelopeGroupCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	g.Data = append(g.Data, EnvelopeGroupResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type EnvelopeGroupResponse struct {
	Data  *EnvelopeGroup `json:"data"`                                                          // Data for the envelope group
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type EnvelopeGroupQueryFilter struct {
	BudgetID ez_uuid.UUID `form:"budget"`                     // By ID of the budget
	Name     string       `form:"name" filterField:"false"`   // By name
	Search   string       `form:"search" filterField:"false"` // By string in the name
	Offset   uint         `form:"offset" filterField:"false"` // The offset of the first envelope group returned. Defaults to 0.
	Limit    int          `form:"limit" filterField:"false"`  // Maximum number of envelope groups to return. Defaults to 50.
}

func (f EnvelopeGroupQueryFilter) model() models.EnvelopeGroup {
	return models.EnvelopeGroup{
		BudgetID: f.BudgetID.UUID,
	}
}
