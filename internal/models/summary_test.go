package models_test

import (
	"time"

	"github.com/pouchbudget/backend/internal/models"
	"github.com/pouchbudget/backend/internal/types"
)

func (suite *TestSuiteStandard) TestBudgetSummary() {
	budget := suite.createTestBudget(models.Budget{Name: "Testing budget"})
	bank := suite.createTestAccount(models.Account{BudgetID: budget.ID, Name: "Bank"})
	employer := suite.createTestAccount(models.Account{BudgetID: budget.ID, Name: "Employer", External: true})
	grocer := suite.createTestAccount(models.Account{BudgetID: budget.ID, Name: "Grocer", External: true})

	group := suite.createTestEnvelopeGroup(models.EnvelopeGroup{BudgetID: budget.ID, Name: "Everyday"})
	grouped := suite.createTestEnvelope(models.Envelope{BudgetID: budget.ID, GroupID: &group.ID, Name: "Groceries"})
	ungrouped := suite.createTestEnvelope(models.Envelope{BudgetID: budget.ID, Name: "Odds and ends"})

	suite.createTestTransaction(models.Transaction{
		BudgetID:             budget.ID,
		SourceAccountID:      employer.ID,
		DestinationAccountID: bank.ID,
		Amount:               100000,
	})

	suite.fundTestEnvelope(budget, grouped, 20000)
	suite.fundTestEnvelope(budget, ungrouped, 5000)

	suite.createTestTransaction(models.Transaction{
		BudgetID:             budget.ID,
		SourceAccountID:      bank.ID,
		DestinationAccountID: grocer.ID,
		EnvelopeID:           &grouped.ID,
		Amount:               4223,
	})

	today := types.DateOf(time.Now().In(time.UTC))
	summary, err := budget.BudgetSummary(models.DB, today.FirstOfMonth(), today)
	suite.Require().Nil(err)

	suite.Assert().Equal(int64(75000), summary.ReadyToAssign)
	suite.Assert().Equal(int64(100000), summary.Income)
	suite.Assert().Equal(int64(25000), summary.Assigned)
	suite.Assert().Equal(int64(-4223), summary.Spent)

	// One real group plus the ungrouped bucket
	suite.Require().Len(summary.Groups, 2)

	everyday := summary.Groups[0]
	suite.Require().NotNil(everyday.ID)
	suite.Assert().Equal(group.ID, *everyday.ID)
	suite.Assert().Equal(int64(20000-4223), everyday.Balance)
	suite.Require().Len(everyday.Envelopes, 1)
	suite.Assert().Equal("Groceries", everyday.Envelopes[0].Name)

	bucket := summary.Groups[1]
	suite.Assert().Nil(bucket.ID, "the ungrouped bucket has no group ID")
	suite.Require().Len(bucket.Envelopes, 1)
	suite.Assert().Equal("Odds and ends", bucket.Envelopes[0].Name)
	suite.Assert().Equal(int64(5000), bucket.Balance)
}

func (suite *TestSuiteStandard) TestSummaryUnfundedCreditCardDebt() {
	budget := suite.createTestBudget(models.Budget{Name: "Testing budget"})
	bank := suite.createTestAccount(models.Account{BudgetID: budget.ID, Name: "Bank"})
	card := suite.createTestAccount(models.Account{BudgetID: budget.ID, Name: "Card", CreditCard: true})
	employer := suite.createTestAccount(models.Account{BudgetID: budget.ID, Name: "Employer", External: true})
	grocer := suite.createTestAccount(models.Account{BudgetID: budget.ID, Name: "Grocer", External: true})
	payment := suite.createTestEnvelope(models.Envelope{BudgetID: budget.ID, Name: "Card payment", LinkedAccountID: &card.ID})

	// Income so the envelope can be funded
	suite.createTestTransaction(models.Transaction{
		BudgetID:             budget.ID,
		SourceAccountID:      employer.ID,
		DestinationAccountID: bank.ID,
		Amount:               100000,
	})

	// 150.00 charged on the card
	suite.createTestTransaction(models.Transaction{
		BudgetID:             budget.ID,
		SourceAccountID:      card.ID,
		DestinationAccountID: grocer.ID,
		Amount:               15000,
	})

	summary, err := budget.Summary(models.DB)
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(15000), summary.UnfundedCreditCardDebt, "uncovered debt is fully unfunded")

	// Fund 100.00 of the debt
	suite.fundTestEnvelope(budget, payment, 10000)

	summary, err = budget.Summary(models.DB)
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(5000), summary.UnfundedCreditCardDebt)
	suite.Assert().Equal(int64(90000), summary.ReadyToAssign)
}
