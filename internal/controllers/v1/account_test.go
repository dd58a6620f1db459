package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/pouchbudget/backend/internal/controllers/v1"
	"github.com/pouchbudget/backend/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func createTestAccount(t *testing.T, a v1.AccountEditable, expectedStatus ...int) v1.AccountResponse {
	if a.BudgetID == uuid.Nil {
		a.BudgetID = createTestBudget(t, v1.BudgetEditable{Name: "Testing budget"}).Data.ID
	}

	if a.Name == "" {
		a.Name = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.AccountEditable{a}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/accounts", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var account v1.AccountCreateResponse
	test.DecodeResponse(t, &r, &account)

	if r.Code == http.StatusCreated {
		return account.Data[0]
	}

	return v1.AccountResponse{}
}

func (suite *TestSuiteStandard) TestAccountsOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No account with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Account exists", createTestAccount(suite.T(), v1.AccountEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/accounts", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsCreate() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})

	account := createTestAccount(suite.T(), v1.AccountEditable{
		BudgetID:       budget.Data.ID,
		Name:           "Checking",
		InitialBalance: 17312,
	})

	assert.Equal(suite.T(), "Checking", account.Data.Name)
	assert.Equal(suite.T(), int64(17312), account.Data.InitialBalance)
	assert.False(suite.T(), account.Data.External)
}

func (suite *TestSuiteStandard) TestAccountsCreateFails() {
	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken body", `{ "note": 2 }`, http.StatusBadRequest},
		{"No body", "", http.StatusBadRequest},
		{"Non-existing budget", []v1.AccountEditable{{BudgetID: uuid.New(), Name: "Orphaned"}}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/accounts", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestAccountsBalance verifies that the account balance includes the initial
// balance and all transactions up to now.
func (suite *TestSuiteStandard) TestAccountsBalance() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})
	account := createTestAccount(suite.T(), v1.AccountEditable{BudgetID: budget.Data.ID, InitialBalance: 10000})
	payee := createTestAccount(suite.T(), v1.AccountEditable{BudgetID: budget.Data.ID, External: true})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		BudgetID:             budget.Data.ID,
		SourceAccountID:      account.Data.ID,
		DestinationAccountID: payee.Data.ID,
		Amount:               2500,
	})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		BudgetID:             budget.Data.ID,
		SourceAccountID:      payee.Data.ID,
		DestinationAccountID: account.Data.ID,
		Amount:               10000,
	})

	r := test.Request(suite.T(), http.MethodGet, account.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), int64(17500), response.Data.Balance)
}

func (suite *TestSuiteStandard) TestAccountsGetFiltered() {
	b := createTestBudget(suite.T(), v1.BudgetEditable{})

	_ = createTestAccount(suite.T(), v1.AccountEditable{BudgetID: b.Data.ID, Name: "Checking", Note: "Daily driver"})
	_ = createTestAccount(suite.T(), v1.AccountEditable{BudgetID: b.Data.ID, Name: "Credit card", CreditCard: true})
	_ = createTestAccount(suite.T(), v1.AccountEditable{BudgetID: b.Data.ID, Name: "Supermarket", External: true, Archived: true})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Budget", fmt.Sprintf("budget=%s", b.Data.ID), 3},
		{"Credit card", "creditCard=true", 1},
		{"External", "external=true", 1},
		{"Archived", "archived=true", 1},
		{"Name", "name=Checking", 1},
		{"Search", "search=daily", 1},
		{"Other budget", fmt.Sprintf("budget=%s", uuid.New()), 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.AccountListResponse
			test.DecodeResponse(t, &r, &response)

			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsUpdate() {
	account := createTestAccount(suite.T(), v1.AccountEditable{Name: "Original", Note: "Keep this"})

	balanceDate := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)
	r := test.Request(suite.T(), http.MethodPatch, account.Data.Links.Self, map[string]any{
		"name":               "Renamed",
		"initialBalanceDate": balanceDate,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.AccountResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), "Renamed", updated.Data.Name)
	assert.Equal(suite.T(), "Keep this", updated.Data.Note)
}

func (suite *TestSuiteStandard) TestAccountsDelete() {
	account := createTestAccount(suite.T(), v1.AccountEditable{})

	r := test.Request(suite.T(), http.MethodDelete, account.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, account.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
