package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/pouchbudget/backend/internal/controllers/v1"
	"github.com/pouchbudget/backend/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestMatchRule(t *testing.T, m v1.MatchRuleEditable, expectedStatus ...int) v1.MatchRuleResponse {
	if m.BudgetID == uuid.Nil {
		m.BudgetID = createTestBudget(t, v1.BudgetEditable{Name: "Testing budget"}).Data.ID
	}

	if m.EnvelopeID == uuid.Nil {
		m.EnvelopeID = createTestEnvelope(t, v1.EnvelopeEditable{BudgetID: m.BudgetID}).Data.ID
	}

	if m.Match == "" {
		m.Match = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.MatchRuleEditable{m}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/match-rules", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var rule v1.MatchRuleCreateResponse
	test.DecodeResponse(t, &r, &rule)

	if r.Code == http.StatusCreated {
		return rule.Data[0]
	}

	return v1.MatchRuleResponse{}
}

func (suite *TestSuiteStandard) TestMatchRulesOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No match rule with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Match rule exists", createTestMatchRule(suite.T(), v1.MatchRuleEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/match-rules", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestMatchRulesCreate() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})
	envelope := createTestEnvelope(suite.T(), v1.EnvelopeEditable{BudgetID: budget.Data.ID})

	rule := createTestMatchRule(suite.T(), v1.MatchRuleEditable{
		BudgetID:   budget.Data.ID,
		EnvelopeID: envelope.Data.ID,
		Priority:   1,
		Match:      "REWE*",
	})

	assert.Equal(suite.T(), "REWE*", rule.Data.Match)
	assert.Equal(suite.T(), uint(1), rule.Data.Priority)
	assert.Equal(suite.T(), envelope.Data.ID, rule.Data.EnvelopeID)
}

func (suite *TestSuiteStandard) TestMatchRulesCreateFails() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken body", `{ "match": 2 }`, http.StatusBadRequest},
		{"Non-existing envelope", []v1.MatchRuleEditable{{BudgetID: budget.Data.ID, EnvelopeID: uuid.New(), Match: "EDEKA*"}}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/match-rules", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestMatchRulesSorting verifies that match rules are sorted by priority,
// with the match pattern as tie breaker.
func (suite *TestSuiteStandard) TestMatchRulesSorting() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})
	envelope := createTestEnvelope(suite.T(), v1.EnvelopeEditable{BudgetID: budget.Data.ID})

	_ = createTestMatchRule(suite.T(), v1.MatchRuleEditable{BudgetID: budget.Data.ID, EnvelopeID: envelope.Data.ID, Priority: 2, Match: "A*"})
	_ = createTestMatchRule(suite.T(), v1.MatchRuleEditable{BudgetID: budget.Data.ID, EnvelopeID: envelope.Data.ID, Priority: 1, Match: "Z*"})
	_ = createTestMatchRule(suite.T(), v1.MatchRuleEditable{BudgetID: budget.Data.ID, EnvelopeID: envelope.Data.ID, Priority: 1, Match: "B*"})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/match-rules?budget=%s", budget.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MatchRuleListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 3)
	assert.Equal(suite.T(), "B*", response.Data[0].Match)
	assert.Equal(suite.T(), "Z*", response.Data[1].Match)
	assert.Equal(suite.T(), "A*", response.Data[2].Match)
}

func (suite *TestSuiteStandard) TestMatchRulesUpdate() {
	rule := createTestMatchRule(suite.T(), v1.MatchRuleEditable{Match: "REWE*"})

	r := test.Request(suite.T(), http.MethodPatch, rule.Data.Links.Self, map[string]any{
		"priority": 5,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.MatchRuleResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), uint(5), updated.Data.Priority)
	assert.Equal(suite.T(), "REWE*", updated.Data.Match)
}

func (suite *TestSuiteStandard) TestMatchRulesDelete() {
	rule := createTestMatchRule(suite.T(), v1.MatchRuleEditable{})

	r := test.Request(suite.T(), http.MethodDelete, rule.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, rule.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
