package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/pouchbudget/backend/internal/controllers/v1"
	"github.com/pouchbudget/backend/internal/models"
	"github.com/pouchbudget/backend/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestBudget(t *testing.T, b v1.BudgetEditable, expectedStatus ...int) v1.BudgetResponse {
	if b.Name == "" {
		b.Name = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.BudgetEditable{b}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var budget v1.BudgetCreateResponse
	test.DecodeResponse(t, &r, &budget)

	if r.Code == http.StatusCreated {
		return budget.Data[0]
	}

	return v1.BudgetResponse{}
}

// TestBudgetsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestBudgetsDBClosed() {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestBudget(t, v1.BudgetEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/budgets", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.BudgetListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

// TestBudgetsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestBudgetsOptions() {
	tests := []struct {
		name   string
		id     string // path at the budgets endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No budget with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Budget exists", createTestBudget(suite.T(), v1.BudgetEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/budgets", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestBudgetsGetSingle verifies that requests for the resource endpoints are
// handled correctly.
func (suite *TestSuiteStandard) TestBudgetsGetSingle() {
	b := createTestBudget(suite.T(), v1.BudgetEditable{})

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing budget", b.Data.ID.String(), http.StatusOK},
		{"ID nil", uuid.Nil.String(), http.StatusNotFound},
		{"No budget with this ID", uuid.New().String(), http.StatusNotFound},
		{"Invalid UUID", "definitely-not-a-UUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsCreate() {
	tests := []struct {
		name     string
		budgets  []v1.BudgetEditable
		status   int
		testFunc func(t *testing.T, b v1.BudgetCreateResponse)
	}{
		{
			"One budget",
			[]v1.BudgetEditable{{Name: "Household", Currency: "EUR"}},
			http.StatusCreated,
			func(t *testing.T, b v1.BudgetCreateResponse) {
				assert.Equal(t, "Household", b.Data[0].Data.Name)
				assert.Equal(t, "EUR", b.Data[0].Data.Currency)
			},
		},
		{
			"Two budgets",
			[]v1.BudgetEditable{{Name: "Home"}, {Name: "Side project"}},
			http.StatusCreated,
			func(t *testing.T, b v1.BudgetCreateResponse) {
				assert.Len(t, b.Data, 2)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets", tt.budgets)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.BudgetCreateResponse
			test.DecodeResponse(t, &r, &response)

			if tt.testFunc != nil {
				tt.testFunc(t, response)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsCreateInvalidBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budgets", `{ Invalid request": Body }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.BudgetCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.NotNil(suite.T(), response.Error)
	assert.Nil(suite.T(), response.Data)
}

// TestBudgetsCreateUnallocatedEnvelope verifies that every new budget gets
// its unallocated envelope.
func (suite *TestSuiteStandard) TestBudgetsCreateUnallocatedEnvelope() {
	b := createTestBudget(suite.T(), v1.BudgetEditable{Name: "With pool"})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/envelopes?budget=%s&unallocated=true", b.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var envelopes v1.EnvelopeListResponse
	test.DecodeResponse(suite.T(), &r, &envelopes)

	require.Len(suite.T(), envelopes.Data, 1)
	assert.True(suite.T(), envelopes.Data[0].Unallocated)
}

func (suite *TestSuiteStandard) TestBudgetsGetFiltered() {
	_ = createTestBudget(suite.T(), v1.BudgetEditable{Name: "Exact String Match", Note: "This is a specific note", Currency: "EUR"})
	_ = createTestBudget(suite.T(), v1.BudgetEditable{Name: "Another String", Note: "A different note", Currency: "EUR"})

	// A budget with an empty name needs to be created directly since the
	// test helper sets a random name
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budgets", []v1.BudgetEditable{{Note: "This is a specific note", Currency: "USD"}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Currency", "currency=EUR", 2},
		{"Name", "name=Exact String Match", 1},
		{"Note", "note=This is a specific note", 2},
		{"Name & currency", "currency=USD&name=Exact String Match", 0},
		{"Empty name with currency", "name=&currency=USD", 1},
		{"Search", "search=different", 1},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.BudgetListResponse
			test.DecodeResponse(t, &r, &response)

			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsUpdate() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{Name: "Original", Note: "Keep this"})

	r := test.Request(suite.T(), http.MethodPatch, budget.Data.Links.Self, map[string]any{
		"name": "Updated new budget",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updatedBudget v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &updatedBudget)

	assert.Equal(suite.T(), "Updated new budget", updatedBudget.Data.Name)
	assert.Equal(suite.T(), "Keep this", updatedBudget.Data.Note)
}

func (suite *TestSuiteStandard) TestBudgetsUpdateFails() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})

	tests := []struct {
		name   string
		url    string
		body   any
		status int
	}{
		{"Invalid body", budget.Data.Links.Self, `{ "name": 2" }`, http.StatusBadRequest},
		{"Non-existing budget", fmt.Sprintf("http://example.com/v1/budgets/%s", uuid.New()), map[string]any{"name": "Nope"}, http.StatusNotFound},
		{"Invalid UUID", "http://example.com/v1/budgets/not-a-uuid", map[string]any{"name": "Nope"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, tt.url, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestBudgetsDelete verifies that deleting a budget deletes all resources
// that belong to it.
func (suite *TestSuiteStandard) TestBudgetsDelete() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})
	account := createTestAccount(suite.T(), v1.AccountEditable{BudgetID: budget.Data.ID})
	external := createTestAccount(suite.T(), v1.AccountEditable{BudgetID: budget.Data.ID, External: true})
	envelope := createTestEnvelope(suite.T(), v1.EnvelopeEditable{BudgetID: budget.Data.ID})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		BudgetID:             budget.Data.ID,
		SourceAccountID:      account.Data.ID,
		DestinationAccountID: external.Data.ID,
		EnvelopeID:           &envelope.Data.ID,
		Amount:               1500,
	})

	r := test.Request(suite.T(), http.MethodDelete, budget.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// The unallocated envelope is deleted together with the budget
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/envelopes?budget=%s", budget.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var envelopes v1.EnvelopeListResponse
	test.DecodeResponse(suite.T(), &r, &envelopes)
	assert.Len(suite.T(), envelopes.Data, 0)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?budget=%s", budget.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var transactions v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &transactions)
	assert.Len(suite.T(), transactions.Data, 0)
}

func (suite *TestSuiteStandard) TestBudgetsDeleteFails() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Non-existing budget", uuid.New().String(), http.StatusNotFound},
		{"Invalid UUID", "not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1/budgets/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}
