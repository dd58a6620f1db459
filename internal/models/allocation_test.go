package models_test

import (
	"github.com/pouchbudget/backend/internal/models"
)

func (suite *TestSuiteStandard) TestTransferValidation() {
	budget := suite.createTestBudget(models.Budget{Name: "Testing budget"})
	source := suite.createTestEnvelope(models.Envelope{BudgetID: budget.ID, Name: "Source"})
	destination := suite.createTestEnvelope(models.Envelope{BudgetID: budget.ID, Name: "Destination"})

	_, err := models.TransferBetweenEnvelopes(models.DB, budget.ID, source.ID, destination.ID, 0, "")
	suite.Assert().ErrorIs(err, models.ErrTransferAmountNotPositive)

	_, err = models.TransferBetweenEnvelopes(models.DB, budget.ID, source.ID, destination.ID, -100, "")
	suite.Assert().ErrorIs(err, models.ErrTransferAmountNotPositive)

	_, err = models.TransferBetweenEnvelopes(models.DB, budget.ID, source.ID, source.ID, 100, "")
	suite.Assert().ErrorIs(err, models.ErrTransferSameEnvelope)

	_, err = models.TransferBetweenEnvelopes(models.DB, budget.ID, source.ID, destination.ID, 100, "")
	suite.Assert().ErrorIs(err, models.ErrTransferInsufficientFunds, "an empty envelope must not be a transfer source")
}

func (suite *TestSuiteStandard) TestTransferBudgetMismatch() {
	budget := suite.createTestBudget(models.Budget{Name: "Testing budget"})
	other := suite.createTestBudget(models.Budget{Name: "Other budget"})
	source := suite.createTestEnvelope(models.Envelope{BudgetID: budget.ID, Name: "Source"})
	foreign := suite.createTestEnvelope(models.Envelope{BudgetID: other.ID, Name: "Foreign"})

	_, err := models.TransferBetweenEnvelopes(models.DB, budget.ID, source.ID, foreign.ID, 100, "")
	suite.Assert().ErrorIs(err, models.ErrTransferEnvelopeBudgetMismatch)
}

// TestTransferConservation verifies that a transfer moves exactly the
// requested amount and the total of all envelope balances is unchanged.
func (suite *TestSuiteStandard) TestTransferConservation() {
	budget := suite.createTestBudget(models.Budget{Name: "Testing budget"})
	source := suite.createTestEnvelope(models.Envelope{BudgetID: budget.ID, Name: "Source"})
	destination := suite.createTestEnvelope(models.Envelope{BudgetID: budget.ID, Name: "Destination"})

	suite.fundTestEnvelope(budget, source, 5000)

	totalBefore := suite.envelopeTotal(budget)

	pair, err := models.TransferBetweenEnvelopes(models.DB, budget.ID, source.ID, destination.ID, 1500, "move it")
	suite.Require().Nil(err)
	suite.Require().Len(pair, 2)
	suite.Assert().Equal(pair[0].PairID, pair[1].PairID)
	suite.Assert().Equal(int64(-1500), pair[0].Amount)
	suite.Assert().Equal(int64(1500), pair[1].Amount)

	sourceBalance, err := source.Balance(models.DB)
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(3500), sourceBalance)

	destinationBalance, err := destination.Balance(models.DB)
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(1500), destinationBalance)

	suite.Assert().Equal(totalBefore, suite.envelopeTotal(budget), "transfers must conserve the total envelope balance")
}

// TestTransferFromUnallocated verifies that the pool may go negative, this
// is the overspend signal.
func (suite *TestSuiteStandard) TestTransferFromUnallocated() {
	budget := suite.createTestBudget(models.Budget{Name: "Testing budget"})
	destination := suite.createTestEnvelope(models.Envelope{BudgetID: budget.ID, Name: "Destination"})

	unallocated, err := budget.UnallocatedEnvelope(models.DB)
	suite.Require().Nil(err)

	_, err = models.TransferBetweenEnvelopes(models.DB, budget.ID, unallocated.ID, destination.ID, 10000, "")
	suite.Require().Nil(err)

	balance, err := unallocated.Balance(models.DB)
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(-10000), balance)
}

// envelopeTotal sums the balances of all envelopes of the budget, the
// unallocated pool included.
func (suite *TestSuiteStandard) envelopeTotal(budget models.Budget) int64 {
	var envelopes []models.Envelope
	err := models.DB.Where(&models.Envelope{BudgetID: budget.ID}).Find(&envelopes).Error
	suite.Require().Nil(err)

	var total int64
	for _, envelope := range envelopes {
		balance, err := envelope.Balance(models.DB)
		suite.Require().Nil(err)
		total += balance
	}

	return total
}
