package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pouchbudget/backend/internal/models"
	"github.com/pouchbudget/backend/internal/types"
	ez_uuid "github.com/pouchbudget/backend/internal/uuid"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	BudgetID             uuid.UUID  `json:"budgetId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"`           // ID of the budget
	SourceAccountID      uuid.UUID  `json:"sourceAccountId" example:"fd81dc45-a3a2-468e-a6fa-b2618f30aa45"`    // ID of the account the money comes from
	DestinationAccountID uuid.UUID  `json:"destinationAccountId" example:"8e16b456-a719-48ce-9fec-e115cfa7cbcc"` // ID of the account the money goes to
	EnvelopeID           *uuid.UUID `json:"envelopeId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"`         // ID of the envelope the transaction is assigned to, null for income and unassigned spending
	Date                 time.Time  `json:"date" example:"2024-03-17T00:00:00Z"`                               // Date of the transaction
	Amount               int64      `json:"amount" example:"1499" minimum:"1"`                                 // Amount in minor currency units, always positive
	Note                 string     `json:"note" example:"Weekly groceries" default:""`                        // A longer description
	Reconciled           bool       `json:"reconciled" example:"true" default:"false"`                        // Has the transaction been verified against a bank statement?
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		BudgetID:             editable.BudgetID,
		SourceAccountID:      editable.SourceAccountID,
		DestinationAccountID: editable.DestinationAccountID,
		EnvelopeID:           editable.EnvelopeID,
		Date:                 editable.Date,
		Amount:               editable.Amount,
		Note:                 editable.Note,
		Reconciled:           editable.Reconciled,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Links TransactionLinks `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			BudgetID:             model.BudgetID,
			SourceAccountID:      model.SourceAccountID,
			DestinationAccountID: model.DestinationAccountID,
			EnvelopeID:           model.EnvelopeID,
			Date:                 model.Date,
			Amount:               model.Amount,
			Note:                 model.Note,
			Reconciled:           model.Reconciled,
		},
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Data  []TransactionResponse `json:"data"`                                                          // List of the created transactions or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	BudgetID             ez_uuid.UUID `form:"budget"`                       // By ID of the budget
	SourceAccountID      ez_uuid.UUID `form:"source"`                       // By ID of the source account
	DestinationAccountID ez_uuid.UUID `form:"destination"`                  // By ID of the destination account
	AccountID            ez_uuid.UUID `form:"account" filterField:"false"`  // By ID of either source or destination account
	EnvelopeID           ez_uuid.UUID `form:"envelope"`                     // By ID of the envelope
	Reconciled           bool         `form:"reconciled"`                   // Has the transaction been verified against a bank statement?
	Note                 string       `form:"note" filterField:"false"`     // By note
	Search               string       `form:"search" filterField:"false"`   // By string in the note
	From                 types.Date   `form:"from" filterField:"false"`     // Only transactions on or after this date
	Until                types.Date   `form:"until" filterField:"false"`    // Only transactions on or before this date
	Offset               uint         `form:"offset" filterField:"false"`   // The offset of the first transaction returned. Defaults to 0.
	Limit                int          `form:"limit" filterField:"false"`    // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.Transaction {
	var envelopeID *uuid.UUID
	if f.EnvelopeID.UUID != uuid.Nil {
		envelopeID = &f.EnvelopeID.UUID
	}

	return models.Transaction{
		BudgetID:             f.BudgetID.UUID,
		SourceAccountID:      f.SourceAccountID.UUID,
		DestinationAccountID: f.DestinationAccountID.UUID,
		EnvelopeID:           envelopeID,
		Reconciled:           f.Reconciled,
	}
}
