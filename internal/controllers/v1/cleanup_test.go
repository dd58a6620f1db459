package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/pouchbudget/backend/internal/controllers/v1"
	"github.com/pouchbudget/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCleanup() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})
	account := createTestAccount(suite.T(), v1.AccountEditable{BudgetID: budget.Data.ID})
	payee := createTestAccount(suite.T(), v1.AccountEditable{BudgetID: budget.Data.ID, External: true})
	envelope := createTestEnvelope(suite.T(), v1.EnvelopeEditable{BudgetID: budget.Data.ID})
	_ = createTestMatchRule(suite.T(), v1.MatchRuleEditable{BudgetID: budget.Data.ID, EnvelopeID: envelope.Data.ID})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		BudgetID:             budget.Data.ID,
		SourceAccountID:      account.Data.ID,
		DestinationAccountID: payee.Data.ID,
		EnvelopeID:           &envelope.Data.ID,
		Amount:               2500,
	})
	fundEnvelope(suite.T(), budget.Data.ID, envelope.Data.ID, 10000)

	tests := []string{
		"http://example.com/v1/budgets",
		"http://example.com/v1/accounts",
		"http://example.com/v1/envelopes",
		"http://example.com/v1/envelope-groups",
		"http://example.com/v1/match-rules",
		"http://example.com/v1/transactions",
	}

	// Delete
	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// Verify that all resources are gone
	for _, url := range tests {
		suite.T().Run(url, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, url, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response struct {
				Data []any `json:"data"`
			}
			test.DecodeResponse(t, &recorder, &response)

			assert.Len(t, response.Data, 0)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupFails() {
	tests := []struct {
		name string
		path string
	}{
		{"No confirmation", "http://example.com/v1"},
		{"Wrong confirmation", "http://example.com/v1?confirm=yes-please-delete-my-data"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodDelete, tt.path, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupDBError() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}
