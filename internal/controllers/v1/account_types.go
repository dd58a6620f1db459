package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pouchbudget/backend/internal/models"
	ez_uuid "github.com/pouchbudget/backend/internal/uuid"
	"gorm.io/gorm"
)

// AccountEditable represents all user configurable parameters
type AccountEditable struct {
	Name               string     `json:"name" example:"Cash" default:""`                           // Name of the account
	BudgetID           uuid.UUID  `json:"budgetId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"`  // ID of the budget this account belongs to
	Note               string     `json:"note" example:"Money in my wallet" default:""`             // A longer description
	External           bool       `json:"external" example:"false" default:"false"`                 // Does the account belong to the budget owner or not?
	CreditCard         bool       `json:"creditCard" example:"false" default:"false"`               // Is the account a credit card?
	InitialBalance     int64      `json:"initialBalance" example:"17312" default:"0"`               // Balance of the account before any transactions were recorded, in minor currency units
	InitialBalanceDate *time.Time `json:"initialBalanceDate" example:"2023-03-17T00:00:00Z"`        // Date of the initial balance
	Archived           bool       `json:"archived" example:"true" default:"false"`                  // Is the account archived?
}

func (editable AccountEditable) model() models.Account {
	return models.Account{
		Name:               editable.Name,
		BudgetID:           editable.BudgetID,
		Note:               editable.Note,
		External:           editable.External,
		CreditCard:         editable.CreditCard,
		InitialBalance:     editable.InitialBalance,
		InitialBalanceDate: editable.InitialBalanceDate,
		Archived:           editable.Archived,
	}
}

type AccountLinks struct {
	Self         string `json:"self" example:"https://example.com/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`                     // The account itself
	Transactions string `json:"transactions" example:"https://example.com/v1/transactions?account=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // Transactions referencing the account
}

type Account struct {
	models.DefaultModel
	AccountEditable
	Links AccountLinks `json:"links"`

	// These fields are computed
	Balance int64 `json:"balance" example:"271338"` // Balance of the account, including the initial balance, in minor currency units
}

func newAccount(c *gin.Context, db *gorm.DB, model models.Account) (Account, error) {
	url := c.GetString(string(models.DBContextURL))

	balance, err := model.Balance(db, time.Now())
	if err != nil {
		return Account{}, err
	}

	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			Name:               model.Name,
			BudgetID:           model.BudgetID,
			Note:               model.Note,
			External:           model.External,
			CreditCard:         model.CreditCard,
			InitialBalance:     model.InitialBalance,
			InitialBalanceDate: model.InitialBalanceDate,
			Archived:           model.Archived,
		},
		Balance: balance,
		Links: AccountLinks{
			Self:         fmt.Sprintf("%s/v1/accounts/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?account=%s", url, model.ID),
		},
	}, nil
}

type AccountListResponse struct {
	Data       []Account   `json:"data"`                                                          // List of accounts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AccountCreateResponse struct {
	Data  []AccountResponse `json:"data"`                                                          // List of the created accounts or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (a *AccountCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AccountResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AccountResponse struct {
	Data  *Account `json:"data"`                                                          // Data for the account
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AccountQueryFilter struct {
	BudgetID   ez_uuid.UUID `form:"budget"`                     // By ID of the budget
	Name       string       `form:"name" filterField:"false"`   // By name
	Note       string       `form:"note" filterField:"false"`   // By note
	External   bool         `form:"external"`                   // Is the account external?
	CreditCard bool         `form:"creditCard"`                 // Is the account a credit card?
	Archived   bool         `form:"archived"`                   // Is the account archived?
	Search     string       `form:"search" filterField:"false"` // By string in name or note
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first account returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of accounts to return. Defaults to 50.
}

func (f AccountQueryFilter) model() models.Account {
	return models.Account{
		BudgetID:   f.BudgetID.UUID,
		External:   f.External,
		CreditCard: f.CreditCard,
		Archived:   f.Archived,
	}
}
