package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/pouchbudget/backend/internal/controllers/v1"
	"github.com/pouchbudget/backend/internal/models"
	"github.com/pouchbudget/backend/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestTransaction(t *testing.T, tr v1.TransactionEditable, expectedStatus ...int) v1.TransactionResponse {
	if tr.BudgetID == uuid.Nil {
		tr.BudgetID = createTestBudget(t, v1.BudgetEditable{Name: "Testing budget"}).Data.ID
	}

	if tr.SourceAccountID == uuid.Nil {
		tr.SourceAccountID = createTestAccount(t, v1.AccountEditable{BudgetID: tr.BudgetID, Name: "Source account"}).Data.ID
	}

	if tr.DestinationAccountID == uuid.Nil {
		tr.DestinationAccountID = createTestAccount(t, v1.AccountEditable{BudgetID: tr.BudgetID, Name: "Destination account", External: true}).Data.ID
	}

	if tr.Amount == 0 {
		tr.Amount = 1000
	}

	if tr.Date.IsZero() {
		tr.Date = time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.TransactionEditable{tr}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var transaction v1.TransactionCreateResponse
	test.DecodeResponse(t, &r, &transaction)

	if r.Code == http.StatusCreated {
		return transaction.Data[0]
	}

	return v1.TransactionResponse{}
}

func (suite *TestSuiteStandard) TestTransactionsOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No transaction with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Transaction exists", createTestTransaction(suite.T(), v1.TransactionEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/transactions", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsCreate() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{Amount: 1499, Note: "Weekly groceries"})

	assert.Equal(suite.T(), int64(1499), transaction.Data.Amount)
	assert.Equal(suite.T(), "Weekly groceries", transaction.Data.Note)
	assert.Equal(suite.T(), time.UTC, transaction.Data.Date.Location())
}

func (suite *TestSuiteStandard) TestTransactionsCreateFails() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})
	account := createTestAccount(suite.T(), v1.AccountEditable{BudgetID: budget.Data.ID})
	payee := createTestAccount(suite.T(), v1.AccountEditable{BudgetID: budget.Data.ID, External: true})

	tests := []struct {
		name     string
		body     any
		status   int
		contains string
	}{
		{"Broken body", `{ "note": 2 }`, http.StatusBadRequest, ""},
		{
			"Zero amount",
			[]v1.TransactionEditable{{BudgetID: budget.Data.ID, SourceAccountID: account.Data.ID, DestinationAccountID: payee.Data.ID}},
			http.StatusBadRequest,
			models.ErrTransactionAmountNotPositive.Error(),
		},
		{
			"Non-existing source account",
			[]v1.TransactionEditable{{BudgetID: budget.Data.ID, SourceAccountID: uuid.New(), DestinationAccountID: payee.Data.ID, Amount: 100}},
			http.StatusNotFound,
			"",
		},
		{
			"Non-existing budget",
			[]v1.TransactionEditable{{BudgetID: uuid.New(), SourceAccountID: account.Data.ID, DestinationAccountID: payee.Data.ID, Amount: 100}},
			http.StatusNotFound,
			"",
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.contains != "" {
				var response v1.TransactionCreateResponse
				test.DecodeResponse(t, &r, &response)
				require.Len(t, response.Data, 1)
				assert.Contains(t, *response.Data[0].Error, tt.contains)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetFiltered() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})
	account := createTestAccount(suite.T(), v1.AccountEditable{BudgetID: budget.Data.ID})
	payee := createTestAccount(suite.T(), v1.AccountEditable{BudgetID: budget.Data.ID, External: true})
	envelope := createTestEnvelope(suite.T(), v1.EnvelopeEditable{BudgetID: budget.Data.ID})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		BudgetID:             budget.Data.ID,
		SourceAccountID:      account.Data.ID,
		DestinationAccountID: payee.Data.ID,
		EnvelopeID:           &envelope.Data.ID,
		Date:                 time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Amount:               1200,
		Note:                 "Groceries",
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		BudgetID:             budget.Data.ID,
		SourceAccountID:      payee.Data.ID,
		DestinationAccountID: account.Data.ID,
		Date:                 time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Amount:               200000,
		Note:                 "Salary",
		Reconciled:           true,
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Budget", fmt.Sprintf("budget=%s", budget.Data.ID), 2},
		{"Source", fmt.Sprintf("source=%s", account.Data.ID), 1},
		{"Destination", fmt.Sprintf("destination=%s", account.Data.ID), 1},
		{"Account matches both directions", fmt.Sprintf("account=%s", account.Data.ID), 2},
		{"Envelope", fmt.Sprintf("envelope=%s", envelope.Data.ID), 1},
		{"Reconciled", fmt.Sprintf("budget=%s&reconciled=true", budget.Data.ID), 1},
		{"Note", "note=Groceries", 1},
		{"From", fmt.Sprintf("budget=%s&from=2024-03-10", budget.Data.ID), 1},
		{"Until", fmt.Sprintf("budget=%s&until=2024-03-10", budget.Data.ID), 1},
		{"From and until", fmt.Sprintf("budget=%s&from=2024-03-01&until=2024-03-31", budget.Data.ID), 2},
		{"Until before any transaction", fmt.Sprintf("budget=%s&until=2024-02-28", budget.Data.ID), 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)

			assert.Len(t, response.Data, tt.len)
		})
	}
}

// TestTransactionsSorting verifies that transactions are returned newest
// first.
func (suite *TestSuiteStandard) TestTransactionsSorting() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})
	account := createTestAccount(suite.T(), v1.AccountEditable{BudgetID: budget.Data.ID})
	payee := createTestAccount(suite.T(), v1.AccountEditable{BudgetID: budget.Data.ID, External: true})

	for _, date := range []time.Time{
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
	} {
		_ = createTestTransaction(suite.T(), v1.TransactionEditable{
			BudgetID:             budget.Data.ID,
			SourceAccountID:      account.Data.ID,
			DestinationAccountID: payee.Data.ID,
			Date:                 date,
			Amount:               100,
		})
	}

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?budget=%s", budget.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 3)
	assert.Equal(suite.T(), time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), response.Data[0].Date)
	assert.Equal(suite.T(), time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), response.Data[2].Date)
}

func (suite *TestSuiteStandard) TestTransactionsUpdate() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{Amount: 1499, Note: "Original note"})

	r := test.Request(suite.T(), http.MethodPatch, transaction.Data.Links.Self, map[string]any{
		"amount": 2000,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), int64(2000), updated.Data.Amount)
	assert.Equal(suite.T(), "Original note", updated.Data.Note)
}

func (suite *TestSuiteStandard) TestTransactionsDelete() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{})

	r := test.Request(suite.T(), http.MethodDelete, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
