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

func createTestEnvelope(t *testing.T, e v1.EnvelopeEditable, expectedStatus ...int) v1.EnvelopeResponse {
	if e.BudgetID == uuid.Nil {
		e.BudgetID = createTestBudget(t, v1.BudgetEditable{Name: "Testing budget"}).Data.ID
	}

	if e.Name == "" {
		e.Name = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.EnvelopeEditable{e}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/envelopes", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var envelope v1.EnvelopeCreateResponse
	test.DecodeResponse(t, &r, &envelope)

	if r.Code == http.StatusCreated {
		return envelope.Data[0]
	}

	return v1.EnvelopeResponse{}
}

// unallocatedEnvelope returns the unallocated envelope for a budget.
func unallocatedEnvelope(t *testing.T, budgetID uuid.UUID) v1.Envelope {
	r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/envelopes?budget=%s&unallocated=true", budgetID), "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.EnvelopeListResponse
	test.DecodeResponse(t, &r, &response)

	require.Len(t, response.Data, 1)
	return response.Data[0]
}

func (suite *TestSuiteStandard) TestEnvelopesOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No envelope with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Envelope exists", createTestEnvelope(suite.T(), v1.EnvelopeEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/envelopes", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestEnvelopesCreate() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})
	group := createTestEnvelopeGroup(suite.T(), v1.EnvelopeGroupEditable{BudgetID: budget.Data.ID})

	targetBalance := int64(50000)
	envelope := createTestEnvelope(suite.T(), v1.EnvelopeEditable{
		BudgetID:      budget.Data.ID,
		GroupID:       &group.Data.ID,
		Name:          "Groceries",
		Icon:          "🥦",
		TargetBalance: &targetBalance,
		SortOrder:     10,
	})

	assert.Equal(suite.T(), "Groceries", envelope.Data.Name)
	assert.Equal(suite.T(), group.Data.ID, *envelope.Data.GroupID)
	assert.Equal(suite.T(), int64(50000), *envelope.Data.TargetBalance)
	assert.False(suite.T(), envelope.Data.Unallocated)
	assert.Equal(suite.T(), int64(0), envelope.Data.Balance)
}

func (suite *TestSuiteStandard) TestEnvelopesCreateFails() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})
	nonExisting := uuid.New()

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken body", `{ "name": 2 }`, http.StatusBadRequest},
		{"Non-existing budget", []v1.EnvelopeEditable{{BudgetID: uuid.New(), Name: "Orphaned"}}, http.StatusNotFound},
		{"Non-existing group", []v1.EnvelopeEditable{{BudgetID: budget.Data.ID, GroupID: &nonExisting, Name: "Groupless"}}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/envelopes", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestEnvelopesSorting verifies that envelopes are sorted by their sort
// order, with the name as tie breaker.
func (suite *TestSuiteStandard) TestEnvelopesSorting() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})

	_ = createTestEnvelope(suite.T(), v1.EnvelopeEditable{BudgetID: budget.Data.ID, Name: "Rent", SortOrder: 20})
	_ = createTestEnvelope(suite.T(), v1.EnvelopeEditable{BudgetID: budget.Data.ID, Name: "Groceries", SortOrder: 10})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/envelopes?budget=%s&unallocated=false", budget.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.EnvelopeListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), "Groceries", response.Data[0].Name)
	assert.Equal(suite.T(), "Rent", response.Data[1].Name)
}

func (suite *TestSuiteStandard) TestEnvelopesGetFiltered() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})
	group := createTestEnvelopeGroup(suite.T(), v1.EnvelopeGroupEditable{BudgetID: budget.Data.ID})

	_ = createTestEnvelope(suite.T(), v1.EnvelopeEditable{BudgetID: budget.Data.ID, GroupID: &group.Data.ID, Name: "Groceries", Description: "Everything for the kitchen"})
	_ = createTestEnvelope(suite.T(), v1.EnvelopeEditable{BudgetID: budget.Data.ID, Name: "Rent", Starred: true})
	_ = createTestEnvelope(suite.T(), v1.EnvelopeEditable{BudgetID: budget.Data.ID, Name: "Old project", Archived: true})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Budget", fmt.Sprintf("budget=%s", budget.Data.ID), 4},
		{"Budget non-unallocated", fmt.Sprintf("budget=%s&unallocated=false", budget.Data.ID), 3},
		{"Group", fmt.Sprintf("group=%s", group.Data.ID), 1},
		{"Starred", fmt.Sprintf("budget=%s&starred=true", budget.Data.ID), 1},
		{"Archived", fmt.Sprintf("budget=%s&archived=true", budget.Data.ID), 1},
		{"Name", "name=Groceries", 1},
		{"Description", "description=Everything for the kitchen", 1},
		{"Search", "search=kitchen", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/envelopes?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.EnvelopeListResponse
			test.DecodeResponse(t, &r, &response)

			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestEnvelopesUpdate() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})
	group := createTestEnvelopeGroup(suite.T(), v1.EnvelopeGroupEditable{BudgetID: budget.Data.ID})
	envelope := createTestEnvelope(suite.T(), v1.EnvelopeEditable{BudgetID: budget.Data.ID, GroupID: &group.Data.ID, Name: "Original", Icon: "🥦"})

	tests := []struct {
		name     string
		body     map[string]any
		testFunc func(t *testing.T, e v1.EnvelopeResponse)
	}{
		{
			"Rename keeps other fields",
			map[string]any{"name": "Renamed"},
			func(t *testing.T, e v1.EnvelopeResponse) {
				assert.Equal(t, "Renamed", e.Data.Name)
				assert.Equal(t, "🥦", e.Data.Icon)
			},
		},
		{
			"Sort order",
			map[string]any{"sortOrder": 40},
			func(t *testing.T, e v1.EnvelopeResponse) {
				assert.Equal(t, uint(40), e.Data.SortOrder)
			},
		},
		{
			"Ungroup with the nil UUID",
			map[string]any{"groupId": uuid.Nil},
			func(t *testing.T, e v1.EnvelopeResponse) {
				assert.Nil(t, e.Data.GroupID)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, envelope.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.EnvelopeResponse
			test.DecodeResponse(t, &r, &response)

			tt.testFunc(t, response)
		})
	}
}

// TestEnvelopesBalance verifies the balance calculation over allocations and
// transactions.
func (suite *TestSuiteStandard) TestEnvelopesBalance() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})
	account := createTestAccount(suite.T(), v1.AccountEditable{BudgetID: budget.Data.ID})
	payee := createTestAccount(suite.T(), v1.AccountEditable{BudgetID: budget.Data.ID, External: true})
	envelope := createTestEnvelope(suite.T(), v1.EnvelopeEditable{BudgetID: budget.Data.ID})

	// Put money into the budget and move it to the envelope
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		BudgetID:             budget.Data.ID,
		SourceAccountID:      payee.Data.ID,
		DestinationAccountID: account.Data.ID,
		Amount:               100000,
	})
	createTestTransfer(suite.T(), budget.Data.ID, v1.TransferEditable{
		FromEnvelopeID: unallocatedEnvelope(suite.T(), budget.Data.ID).ID,
		ToEnvelopeID:   envelope.Data.ID,
		Amount:         30000,
	})

	// Spend from the envelope
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		BudgetID:             budget.Data.ID,
		SourceAccountID:      account.Data.ID,
		DestinationAccountID: payee.Data.ID,
		EnvelopeID:           &envelope.Data.ID,
		Amount:               12000,
	})

	r := test.Request(suite.T(), http.MethodGet, envelope.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.EnvelopeResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), int64(18000), response.Data.Balance)
}

// TestEnvelopesDeleteUnallocated verifies that the unallocated envelope of a
// budget cannot be deleted.
func (suite *TestSuiteStandard) TestEnvelopesDeleteUnallocated() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})
	envelope := unallocatedEnvelope(suite.T(), budget.Data.ID)

	r := test.Request(suite.T(), http.MethodDelete, envelope.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response struct {
		Error string `json:"error"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Contains(suite.T(), response.Error, models.ErrUnallocatedEnvelopeDeleted.Error())
}

func (suite *TestSuiteStandard) TestEnvelopesDelete() {
	envelope := createTestEnvelope(suite.T(), v1.EnvelopeEditable{})

	r := test.Request(suite.T(), http.MethodDelete, envelope.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, envelope.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
