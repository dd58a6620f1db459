package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pouchbudget/backend/internal/types"
)

// Envelope represents an envelope in your budget: a named sub-budget that
// money is assigned into.
type Envelope struct {
	DefaultModel
	Budget          Budget     `json:"-"`
	BudgetID        uuid.UUID  `gorm:"uniqueIndex:envelope_budget_group_name"`
	GroupID         *uuid.UUID `gorm:"uniqueIndex:envelope_budget_group_name"` // nil = ungrouped
	Group           *EnvelopeGroup
	Name            string `gorm:"uniqueIndex:envelope_budget_group_name"`
	Description     string
	Icon            string
	LinkedAccountID *uuid.UUID // Set for envelopes that track a credit card account
	LinkedAccount   *Account
	Unallocated     bool   // The "Ready to Assign" pool. Exactly one per budget.
	Archived        bool
	Starred         bool
	TargetBalance   *int64 // Minor currency units, must not be negative
	SortOrder       uint   // 0 means the sort order has not been initialized yet
}

// BeforeSave trims whitespace from all strings and normalizes references.
func (e *Envelope) BeforeSave(_ *gorm.DB) error {
	e.Name = strings.TrimSpace(e.Name)
	e.Description = strings.TrimSpace(e.Description)
	e.Icon = strings.TrimSpace(e.Icon)

	// A pointer to the nil UUID means "no reference"
	if e.GroupID != nil && *e.GroupID == uuid.Nil {
		e.GroupID = nil
	}
	if e.LinkedAccountID != nil && *e.LinkedAccountID == uuid.Nil {
		e.LinkedAccountID = nil
	}

	return nil
}

func (e *Envelope) BeforeCreate(tx *gorm.DB) error {
	_ = e.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Envelope)
	return e.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the envelope before
// committing an update to the database.
func (e *Envelope) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Envelope)
	if tx.Statement.Changed("BudgetID") || tx.Statement.Changed("GroupID") || tx.Statement.Changed("LinkedAccountID") {
		return e.checkIntegrity(tx, toSave)
	}

	return nil
}

// BeforeDelete keeps the unallocated envelope from being deleted. It holds
// the "Ready to Assign" money of the budget and only goes away with the
// budget itself.
func (e *Envelope) BeforeDelete(_ *gorm.DB) error {
	if e.Unallocated {
		return ErrUnallocatedEnvelopeDeleted
	}

	return nil
}

// checkIntegrity verifies references to other resources and the
// one-unallocated-envelope-per-budget rule.
func (e *Envelope) checkIntegrity(tx *gorm.DB, toSave Envelope) error {
	err := tx.First(&Budget{}, toSave.BudgetID).Error
	if err != nil {
		return err
	}

	if toSave.GroupID != nil && *toSave.GroupID != uuid.Nil {
		err = tx.First(&EnvelopeGroup{}, *toSave.GroupID).Error
		if err != nil {
			return err
		}
	}

	if toSave.LinkedAccountID != nil && *toSave.LinkedAccountID != uuid.Nil {
		err = tx.First(&Account{}, *toSave.LinkedAccountID).Error
		if err != nil {
			return err
		}
	}

	if toSave.Unallocated {
		var count int64
		err = tx.Model(&Envelope{}).
			Where("budget_id = ? AND unallocated AND id != ?", toSave.BudgetID, e.ID).
			Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			return ErrUnallocatedEnvelopeExists
		}
	}

	return nil
}

// Balance returns the as-of-now balance of the envelope in minor currency
// units.
//
// The balance is the sum of all allocations to the envelope plus the signed
// sum of all transactions assigned to it. The unallocated envelope
// additionally collects all income transactions, money sent from external
// accounts to on-budget accounts without an envelope set.
func (e Envelope) Balance(db *gorm.DB) (int64, error) {
	allocated, err := allocationSum(db, db.Where(&Allocation{EnvelopeID: e.ID}))
	if err != nil {
		return 0, err
	}

	activity, err := e.transactionActivity(db, time.Time{}, time.Time{})
	if err != nil {
		return 0, err
	}

	balance := allocated + activity

	if e.Unallocated {
		income, err := incomeSum(db, e.BudgetID, time.Time{}, time.Time{})
		if err != nil {
			return 0, err
		}
		balance += income
	}

	return balance, nil
}

// Activity returns the signed net sum of all postings (transactions and
// transfer allocations) for the envelope within the date window.
func (e Envelope) Activity(db *gorm.DB, from, until types.Date) (int64, error) {
	query := db.Where(&Allocation{EnvelopeID: e.ID}).
		Where("datetime(allocations.date) >= datetime(?)", from.Time()).
		Where("datetime(allocations.date) < datetime(?)", until.EndTime())

	allocated, err := allocationSum(db, query)
	if err != nil {
		return 0, err
	}

	activity, err := e.transactionActivity(db, from.Time(), until.EndTime())
	if err != nil {
		return 0, err
	}

	if e.Unallocated {
		income, err := incomeSum(db, e.BudgetID, from.Time(), until.EndTime())
		if err != nil {
			return 0, err
		}
		activity += income
	}

	return allocated + activity, nil
}

// transactionActivity sums the transactions assigned to the envelope,
// incoming minus outgoing. Zero bounds are unbounded.
func (e Envelope) transactionActivity(db *gorm.DB, from, until time.Time) (int64, error) {
	var transactions []Transaction

	query := db.
		Preload("DestinationAccount").
		Where(Transaction{EnvelopeID: &e.ID})
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

	// Money moving to an external account left the envelope, money coming
	// back in (e.g. a refund) adds to it.
	var sum int64
	for _, t := range transactions {
		if t.DestinationAccount.External {
			sum -= t.Amount
		} else {
			sum += t.Amount
		}
	}

	return sum, nil
}
