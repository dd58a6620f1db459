package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/pouchbudget/backend/internal/models"
)

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	Name     string `json:"name" example:"Household" default:""`              // Name of the budget
	Note     string `json:"note" example:"My shared household budget" default:""` // A longer description
	Currency string `json:"currency" example:"EUR" default:""`                // ISO 4217 currency code, display attribute only
}

func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		Name:     editable.Name,
		Note:     editable.Note,
		Currency: editable.Currency,
	}
}

type BudgetLinks struct {
	Self          string `json:"self" example:"https://example.com/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`                   // The budget itself
	Accounts      string `json:"accounts" example:"https://example.com/v1/accounts?budget=550dc009-cea6-4c12-b2a5-03446eb7b7cf"`       // Accounts for this budget
	Envelopes     string `json:"envelopes" example:"https://example.com/v1/envelopes?budget=550dc009-cea6-4c12-b2a5-03446eb7b7cf"`     // Envelopes for this budget
	Groups        string `json:"groups" example:"https://example.com/v1/envelope-groups?budget=550dc009-cea6-4c12-b2a5-03446eb7b7cf"`  // Envelope groups for this budget
	Transactions  string `json:"transactions" example:"https://example.com/v1/transactions?budget=550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // Transactions for this budget
	Summary       string `json:"summary" example:"https://example.com/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf/summary"`        // Headline figures
	BudgetSummary string `json:"budgetSummary" example:"https://example.com/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf/budget-summary"` // Windowed aggregate
}

type Budget struct {
	models.DefaultModel
	BudgetEditable
	Links BudgetLinks `json:"links"`
}

func newBudget(c *gin.Context, model models.Budget) Budget {
	url := c.GetString(string(models.DBContextURL))

	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			Name:     model.Name,
			Note:     model.Note,
			Currency: model.Currency,
		},
		Links: BudgetLinks{
			Self:          fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
			Accounts:      fmt.Sprintf("%s/v1/accounts?budget=%s", url, model.ID),
			Envelopes:     fmt.Sprintf("%s/v1/envelopes?budget=%s", url, model.ID),
			Groups:        fmt.Sprintf("%s/v1/envelope-groups?budget=%s", url, model.ID),
			Transactions:  fmt.Sprintf("%s/v1/transactions?budget=%s", url, model.ID),
			Summary:       fmt.Sprintf("%s/v1/budgets/%s/summary", url, model.ID),
			BudgetSummary: fmt.Sprintf("%s/v1/budgets/%s/budget-summary", url, model.ID),
		},
	}
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                          // List of budgets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BudgetCreateResponse struct {
	Data  []BudgetResponse `json:"data"`                                                          // List of the created budgets or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (b *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`                                                          // Data for the budget
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	Note     string `form:"note" filterField:"false"`   // By note
	Currency string `form:"currency"`                   // By currency
	Search   string `form:"search" filterField:"false"` // By string in name or note
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first budget returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of budgets to return. Defaults to 50.
}

func (f BudgetQueryFilter) model() models.Budget {
	return models.Budget{
		Currency: f.Currency,
	}
}
