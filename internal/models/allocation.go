package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Allocation is one side of a money movement between envelopes. A transfer
// writes two allocations sharing a PairID: a debit on the source envelope
// and a credit on the destination envelope.
type Allocation struct {
	DefaultModel
	EnvelopeID uuid.UUID
	Envelope   Envelope `json:"-"`
	PairID     uuid.UUID `gorm:"index"` // Shared by the two halves of a transfer
	Date       time.Time
	Amount     int64 // Minor currency units, signed: negative = debit, positive = credit
	Note       string
}

// AfterFind enforces dates to be in UTC.
func (a *Allocation) AfterFind(tx *gorm.DB) (err error) {
	err = a.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	a.Date = a.Date.In(time.UTC)
	return
}

func (a *Allocation) BeforeSave(_ *gorm.DB) error {
	if a.Date.IsZero() {
		a.Date = time.Now().In(time.UTC)
	} else {
		a.Date = a.Date.In(time.UTC)
	}

	return nil
}

// allocationSum sums the amounts of all allocations matching the query.
func allocationSum(db *gorm.DB, query *gorm.DB) (int64, error) {
	var allocations []Allocation

	err := query.Find(&allocations).Error
	if err != nil {
		return 0, err
	}

	var sum int64
	for _, a := range allocations {
		sum += a.Amount
	}

	return sum, nil
}

// TransferBetweenEnvelopes atomically moves amount from one envelope to
// another by writing a debit/credit allocation pair.
//
// The source envelope must hold enough money unless it is the unallocated
// envelope: assigning more than "Ready to Assign" is allowed and shows up
// as a negative pool, which is the overspend signal for the user.
func TransferBetweenEnvelopes(db *gorm.DB, budgetID, fromID, toID uuid.UUID, amount int64, note string) ([]Allocation, error) {
	if amount <= 0 {
		return nil, ErrTransferAmountNotPositive
	}

	if fromID == toID {
		return nil, ErrTransferSameEnvelope
	}

	var source, destination Envelope
	err := db.First(&source, fromID).Error
	if err != nil {
		return nil, err
	}

	err = db.First(&destination, toID).Error
	if err != nil {
		return nil, err
	}

	if source.BudgetID != budgetID || destination.BudgetID != budgetID {
		return nil, ErrTransferEnvelopeBudgetMismatch
	}

	if !source.Unallocated {
		balance, err := source.Balance(db)
		if err != nil {
			return nil, err
		}

		if balance < amount {
			return nil, ErrTransferInsufficientFunds
		}
	}

	pairID := uuid.New()
	date := time.Now().In(time.UTC)

	pair := []Allocation{
		{EnvelopeID: fromID, PairID: pairID, Date: date, Amount: -amount, Note: note},
		{EnvelopeID: toID, PairID: pairID, Date: date, Amount: amount, Note: note},
	}

	// Both halves commit or neither does
	err = db.Transaction(func(tx *gorm.DB) error {
		for i := range pair {
			err := tx.Create(&pair[i]).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return pair, nil
}
