package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account represents an asset account, e.g. a bank account or a credit card.
type Account struct {
	DefaultModel
	Budget             Budget    `json:"-"`
	BudgetID           uuid.UUID `gorm:"uniqueIndex:account_name_budget_id"`
	Name               string    `gorm:"uniqueIndex:account_name_budget_id"`
	Note               string
	External           bool  // External accounts are payees, they are not part of the budget
	CreditCard         bool  // Credit card accounts can have an envelope linked to them
	InitialBalance     int64 // Minor currency units
	InitialBalanceDate *time.Time
	Archived           bool
}

// BeforeSave ensures consistency for the account.
//
// External accounts cannot be credit cards and strings are trimmed.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	if a.External {
		a.CreditCard = false
	}

	a.Name = strings.TrimSpace(a.Name)
	a.Note = strings.TrimSpace(a.Note)

	return nil
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Account)
	return a.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the account before
// committing an update to the database.
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Account)
	if tx.Statement.Changed("BudgetID") {
		return a.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies references to other resources.
func (a *Account) checkIntegrity(tx *gorm.DB, toSave Account) error {
	return tx.First(&Budget{}, toSave.BudgetID).Error
}

// Balance calculates the balance of the account at a specific point in time,
// in minor currency units.
func (a Account) Balance(db *gorm.DB, t time.Time) (int64, error) {
	var transactions []Transaction

	err := db.
		Where(
			db.Where(Transaction{DestinationAccountID: a.ID}).
				Or(db.Where(Transaction{SourceAccountID: a.ID}))).
		Where("datetime(transactions.date) < datetime(?)", t).
		Find(&transactions).Error
	if err != nil {
		return 0, err
	}

	var balance int64
	if a.InitialBalanceDate == nil || t.After(*a.InitialBalanceDate) {
		balance = a.InitialBalance
	}

	// Add incoming transactions, subtract outgoing transactions
	for _, transaction := range transactions {
		if transaction.DestinationAccountID == a.ID {
			balance += transaction.Amount
		} else {
			balance -= transaction.Amount
		}
	}

	return balance, nil
}
