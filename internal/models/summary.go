package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pouchbudget/backend/internal/types"
)

// EnvelopeSummary holds the headline figures of a budget.
type EnvelopeSummary struct {
	ReadyToAssign          int64 `json:"readyToAssign" example:"210042"`          // Balance of the unallocated envelope, minor units
	UnfundedCreditCardDebt int64 `json:"unfundedCreditCardDebt" example:"12995"` // Credit card debt not covered by the linked envelopes
}

// EnvelopePeriod is the per-envelope part of a budget summary.
type EnvelopePeriod struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name" example:"Groceries"`
	Activity      int64      `json:"activity" example:"-10342"` // Net sum of postings within the requested window
	Balance       int64      `json:"balance" example:"54023"`   // As-of-now balance, independent of the window
	TargetBalance *int64     `json:"targetBalance"`
	Starred       bool       `json:"starred"`
	LinkedAccount *uuid.UUID `json:"linkedAccountId"`
}

// GroupPeriod aggregates the envelopes of one group. The ungrouped bucket
// is reported with a nil ID and an empty name.
type GroupPeriod struct {
	ID        *uuid.UUID       `json:"id"`
	Name      string           `json:"name" example:"Everyday Expenses"`
	Icon      string           `json:"icon"`
	Activity  int64            `json:"activity" example:"-20581"`
	Balance   int64            `json:"balance" example:"104233"`
	Envelopes []EnvelopePeriod `json:"envelopes"`
}

// BudgetSummary is the aggregate for a budget over a date window.
type BudgetSummary struct {
	ID            uuid.UUID     `json:"id"`                            // The ID of the budget
	Name          string        `json:"name" example:"Household"`      // The name of the budget
	From          types.Date    `json:"from" example:"2024-03-01"`     // Start of the window, inclusive
	Until         types.Date    `json:"until" example:"2024-03-15"`    // End of the window, inclusive
	ReadyToAssign int64         `json:"readyToAssign" example:"21042"` // As-of-now, independent of the window
	Income        int64         `json:"income" example:"231734"`       // Income within the window
	Spent         int64         `json:"spent" example:"-133701"`       // Spending within the window (negative)
	Assigned      int64         `json:"assigned" example:"120050"`     // Money assigned out of the pool within the window
	Groups        []GroupPeriod `json:"groups"`
}

// Summary computes the headline figures for the budget.
func (b Budget) Summary(db *gorm.DB) (EnvelopeSummary, error) {
	unallocated, err := b.UnallocatedEnvelope(db)
	if err != nil {
		return EnvelopeSummary{}, err
	}

	readyToAssign, err := unallocated.Balance(db)
	if err != nil {
		return EnvelopeSummary{}, err
	}

	unfunded, err := b.unfundedCreditCardDebt(db)
	if err != nil {
		return EnvelopeSummary{}, err
	}

	return EnvelopeSummary{
		ReadyToAssign:          readyToAssign,
		UnfundedCreditCardDebt: unfunded,
	}, nil
}

// UnallocatedEnvelope returns the envelope holding the "Ready to Assign"
// money of the budget.
func (b Budget) UnallocatedEnvelope(db *gorm.DB) (Envelope, error) {
	var envelope Envelope
	err := db.Where("budget_id = ? AND unallocated", b.ID).First(&envelope).Error
	if err != nil {
		return Envelope{}, err
	}

	return envelope, nil
}

// unfundedCreditCardDebt sums, over all credit card accounts of the budget,
// the debt that is not covered by the balance of the linked envelope.
func (b Budget) unfundedCreditCardDebt(db *gorm.DB) (int64, error) {
	var accounts []Account
	err := db.Where(&Account{BudgetID: b.ID, CreditCard: true}).Find(&accounts).Error
	if err != nil {
		return 0, err
	}

	var unfunded int64
	for _, account := range accounts {
		balance, err := account.Balance(db, time.Now().In(time.UTC))
		if err != nil {
			return 0, err
		}

		// Positive balances mean no debt
		debt := -balance
		if debt <= 0 {
			continue
		}

		var linked Envelope
		err = db.Where("linked_account_id = ?", account.ID).First(&linked).Error
		if err != nil {
			// No envelope funds this card, all debt is unfunded
			unfunded += debt
			continue
		}

		funding, err := linked.Balance(db)
		if err != nil {
			return 0, err
		}

		if funding < debt {
			unfunded += debt - funding
		}
	}

	return unfunded, nil
}

// BudgetSummary computes the grouped aggregate for the window [from, until].
func (b Budget) BudgetSummary(db *gorm.DB, from, until types.Date) (BudgetSummary, error) {
	headline, err := b.Summary(db)
	if err != nil {
		return BudgetSummary{}, err
	}

	summary := BudgetSummary{
		ID:            b.ID,
		Name:          b.Name,
		From:          from,
		Until:         until,
		ReadyToAssign: headline.ReadyToAssign,
	}

	income, err := incomeSum(db, b.ID, from.Time(), until.EndTime())
	if err != nil {
		return BudgetSummary{}, err
	}
	summary.Income = income

	var groups []EnvelopeGroup
	err = db.Where(&EnvelopeGroup{BudgetID: b.ID}).Order("sort_order ASC, name ASC").Find(&groups).Error
	if err != nil {
		return BudgetSummary{}, err
	}

	var envelopes []Envelope
	err = db.Where("budget_id = ? AND NOT archived AND NOT unallocated", b.ID).
		Order("sort_order ASC, name ASC").
		Find(&envelopes).Error
	if err != nil {
		return BudgetSummary{}, err
	}

	byGroup := make(map[uuid.UUID][]Envelope)
	var ungrouped []Envelope
	for _, envelope := range envelopes {
		if envelope.GroupID == nil {
			ungrouped = append(ungrouped, envelope)
			continue
		}
		byGroup[*envelope.GroupID] = append(byGroup[*envelope.GroupID], envelope)
	}

	for _, group := range groups {
		period, err := b.groupPeriod(db, byGroup[group.ID], from, until)
		if err != nil {
			return BudgetSummary{}, err
		}

		id := group.ID
		period.ID = &id
		period.Name = group.Name
		period.Icon = group.Icon
		summary.Groups = append(summary.Groups, period)
	}

	if len(ungrouped) > 0 {
		period, err := b.groupPeriod(db, ungrouped, from, until)
		if err != nil {
			return BudgetSummary{}, err
		}

		summary.Groups = append(summary.Groups, period)
	}

	spent, err := b.spentSum(db, from, until)
	if err != nil {
		return BudgetSummary{}, err
	}
	summary.Spent = spent

	assigned, err := b.assignedSum(db, from, until)
	if err != nil {
		return BudgetSummary{}, err
	}
	summary.Assigned = assigned

	return summary, nil
}

// groupPeriod computes the per-envelope figures and totals for one group.
func (b Budget) groupPeriod(db *gorm.DB, envelopes []Envelope, from, until types.Date) (GroupPeriod, error) {
	period := GroupPeriod{
		Envelopes: make([]EnvelopePeriod, 0, len(envelopes)),
	}

	for _, envelope := range envelopes {
		activity, err := envelope.Activity(db, from, until)
		if err != nil {
			return GroupPeriod{}, err
		}

		balance, err := envelope.Balance(db)
		if err != nil {
			return GroupPeriod{}, err
		}

		period.Activity += activity
		period.Balance += balance
		period.Envelopes = append(period.Envelopes, EnvelopePeriod{
			ID:            envelope.ID,
			Name:          envelope.Name,
			Activity:      activity,
			Balance:       balance,
			TargetBalance: envelope.TargetBalance,
			Starred:       envelope.Starred,
			LinkedAccount: envelope.LinkedAccountID,
		})
	}

	return period, nil
}

// spentSum returns the signed sum of all envelope-assigned transactions of
// the budget within the window. It is negative when more money left the
// envelopes than came back in.
func (b Budget) spentSum(db *gorm.DB, from, until types.Date) (int64, error) {
	var transactions []Transaction

	err := db.
		Preload("DestinationAccount").
		Where("transactions.budget_id = ? AND transactions.envelope_id IS NOT NULL", b.ID).
		Where("datetime(transactions.date) >= datetime(?)", from.Time()).
		Where("datetime(transactions.date) < datetime(?)", until.EndTime()).
		Find(&transactions).Error
	if err != nil {
		return 0, err
	}

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

// assignedSum returns the money moved out of the unallocated envelope
// within the window.
func (b Budget) assignedSum(db *gorm.DB, from, until types.Date) (int64, error) {
	unallocated, err := b.UnallocatedEnvelope(db)
	if err != nil {
		return 0, err
	}

	query := db.Where(&Allocation{EnvelopeID: unallocated.ID}).
		Where("allocations.amount < 0").
		Where("datetime(allocations.date) >= datetime(?)", from.Time()).
		Where("datetime(allocations.date) < datetime(?)", until.EndTime())

	sum, err := allocationSum(db, query)
	if err != nil {
		return 0, err
	}

	return -sum, nil
}

// ActivityLine is one posting in the line-itemized activity of an envelope.
type ActivityLine struct {
	ID     uuid.UUID  `json:"id"`
	Kind   string     `json:"kind" enums:"transaction,transfer" example:"transaction"`
	Date   time.Time  `json:"date"`
	Amount int64      `json:"amount" example:"-1299"` // Signed from the envelope's perspective
	Note   string     `json:"note"`
	PairID *uuid.UUID `json:"pairId"` // Set for transfers, identifies the other half
}

// ActivityLines returns the transactions and transfer allocations of the
// envelope within the window, newest first.
func (e Envelope) ActivityLines(db *gorm.DB, from, until types.Date) ([]ActivityLine, error) {
	lines := []ActivityLine{}

	var transactions []Transaction
	err := db.
		Preload("DestinationAccount").
		Where(Transaction{EnvelopeID: &e.ID}).
		Where("datetime(transactions.date) >= datetime(?)", from.Time()).
		Where("datetime(transactions.date) < datetime(?)", until.EndTime()).
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	for _, t := range transactions {
		amount := t.Amount
		if t.DestinationAccount.External {
			amount = -amount
		}

		lines = append(lines, ActivityLine{
			ID:     t.ID,
			Kind:   "transaction",
			Date:   t.Date,
			Amount: amount,
			Note:   t.Note,
		})
	}

	var allocations []Allocation
	err = db.
		Where(&Allocation{EnvelopeID: e.ID}).
		Where("datetime(allocations.date) >= datetime(?)", from.Time()).
		Where("datetime(allocations.date) < datetime(?)", until.EndTime()).
		Find(&allocations).Error
	if err != nil {
		return nil, err
	}

	for _, a := range allocations {
		pairID := a.PairID
		lines = append(lines, ActivityLine{
			ID:     a.ID,
			Kind:   "transfer",
			Date:   a.Date,
			Amount: a.Amount,
			Note:   a.Note,
			PairID: &pairID,
		})
	}

	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Date.After(lines[j].Date)
	})

	return lines, nil
}
