package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pouchbudget/backend/internal/models"
	ez_uuid "github.com/pouchbudget/backend/internal/uuid"
)

// MatchRuleEditable represents all user configurable parameters
type MatchRuleEditable struct {
	BudgetID   uuid.UUID `json:"budgetId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"`   // ID of the budget
	EnvelopeID uuid.UUID `json:"envelopeId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // ID of the envelope imported transactions are assigned to
	Priority   uint      `json:"priority" example:"1" default:"0"`                          // Lower priority wins when multiple rules match
	Match      string    `json:"match" example:"REWE*" default:""`                          // Glob pattern matched against the payee name
}

func (editable MatchRuleEditable) model() models.MatchRule {
	return models.MatchRule{
		BudgetID:   editable.BudgetID,
		EnvelopeID: editable.EnvelopeID,
		Priority:   editable.Priority,
		Match:      editable.Match,
	}
}

type MatchRuleLinks struct {
	Self string `json:"self" example:"https://example.com/v1/match-rules/95685c82-53c6-455d-aa38-c6b04fed7a5b"` // The match rule itself
}

type MatchRule struct {
	models.DefaultModel
	MatchRuleEditable
	Links MatchRuleLinks `json:"links"`
}

func newMatchRule(c *gin.Context, model models.MatchRule) MatchRule {
	url := c.GetString(string(models.DBContextURL))

	return MatchRule{
		DefaultModel: model.DefaultModel,
		MatchRuleEditable: MatchRuleEditable{
			BudgetID:   model.BudgetID,
			EnvelopeID: model.EnvelopeID,
			Priority:   model.Priority,
			Match:      model.Match,
		},
		Links: MatchRuleLinks{
			Self: fmt.Sprintf("%s/v1/match-rules/%s", url, model.ID),
		},
	}
}

type MatchRuleListResponse struct {
	Data       []MatchRule `json:"data"`                                                          // List of match rules
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type MatchRuleCreateResponse struct {
	Data  []MatchRuleResponse `json:"data"`                                                          // List of the created match rules or their respective error
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (m *MatchRuleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, MatchRuleResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MatchRuleResponse struct {
	Data  *MatchRule `json:"data"`                                                          // Data for the match rule
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type MatchRuleQueryFilter struct {
	BudgetID   ez_uuid.UUID `form:"budget"`                     // By ID of the budget
	EnvelopeID ez_uuid.UUID `form:"envelope"`                   // By ID of the envelope
	Priority   uint         `form:"priority"`                   // By priority
	Match      string       `form:"match" filterField:"false"`  // By match pattern
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first match rule returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of match rules to return. Defaults to 50.
}

func (f MatchRuleQueryFilter) model() models.MatchRule {
	return models.MatchRule{
		BudgetID:   f.BudgetID.UUID,
		EnvelopeID: f.EnvelopeID.UUID,
		Priority:   f.Priority,
	}
}
