package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction represents a transaction between two accounts.
type Transaction struct {
	DefaultModel
	BudgetID             uuid.UUID
	Budget               Budget `json:"-"`
	SourceAccountID      uuid.UUID `gorm:"check:source_destination_different,source_account_id != destination_account_id"`
	SourceAccount        Account
	DestinationAccountID uuid.UUID
	DestinationAccount   Account
	EnvelopeID           *uuid.UUID
	Envelope             *Envelope
	Date                 time.Time // Time of day is currently only used for sorting
	Amount               int64     // Minor currency units, always positive
	Note                 string
	Reconciled           bool
}

// AfterFind enforces dates to be in UTC.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave
//   - sets the timezone for the Date to UTC
//   - verifies the amount is positive
//   - trims whitespace from string fields
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	t.Note = strings.TrimSpace(t.Note)

	// Ensure that the Envelope ID is nil and not a pointer to a nil UUID
	// when it is set
	if t.EnvelopeID != nil && *t.EnvelopeID == uuid.Nil {
		t.EnvelopeID = nil
	}

	if t.Amount <= 0 {
		return ErrTransactionAmountNotPositive
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Transaction)
	return t.checkIntegrity(tx, *toSave)
}

// checkIntegrity verifies references to other resources.
func (t *Transaction) checkIntegrity(tx *gorm.DB, toSave Transaction) error {
	err := tx.First(&Budget{}, toSave.BudgetID).Error
	if err != nil {
		return err
	}

	err = tx.First(&Account{}, toSave.SourceAccountID).Error
	if err != nil {
		return err
	}

	err = tx.First(&Account{}, toSave.DestinationAccountID).Error
	if err != nil {
		return err
	}

	if toSave.EnvelopeID != nil && *toSave.EnvelopeID != uuid.Nil {
		err = tx.First(&Envelope{}, *toSave.EnvelopeID).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// incomeSum returns the total income for a budget: all money sent from
// external accounts to on-budget accounts without an envelope set.
// Zero bounds are unbounded.
func incomeSum(db *gorm.DB, budgetID uuid.UUID, from, until time.Time) (int64, error) {
	var transactions []Transaction

	query := db.
		Joins("SourceAccount").
		Joins("DestinationAccount").
		Where("transactions.budget_id = ? AND transactions.envelope_id IS NULL", budgetID).
		Where("SourceAccount.external AND NOT DestinationAccount.external")
	if !from.IsZero() {
		query = query.Where("datetime(transactions.date) >= datetime(?)", from)
	}
	if !until.IsZero() {
		query = query.Where("datetime(transactions.date) < datetime(?)", until)
	}

	err := query.Find(&transactions).Error
	if err != nil {
		return 0, err
	}

	var sum int64
	for _, t := range transactions {
		sum += t.Amount
	}

	return sum, nil
}
