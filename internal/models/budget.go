package models

import (
	"strings"

	"gorm.io/gorm"

	"golang.org/x/text/currency"
)

// Budget represents a budget
//
// A budget is the highest level of organization in Pouch Budget, all other
// resources reference it directly or transitively.
type Budget struct {
	DefaultModel
	Name     string
	Note     string
	Currency string // ISO 4217 code, e.g. "EUR". Display attribute only, no conversion happens.
}

// BeforeSave trims whitespace and verifies the currency code.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Note = strings.TrimSpace(b.Note)
	b.Currency = strings.ToUpper(strings.TrimSpace(b.Currency))

	if b.Currency != "" {
		if _, err := currency.ParseISO(b.Currency); err != nil {
			return ErrBudgetCurrencyInvalid
		}
	}

	return nil
}

// AfterCreate creates the unallocated envelope for the budget.
//
// Every budget has exactly one unallocated envelope, it holds the money
// that is ready to assign.
func (b *Budget) AfterCreate(tx *gorm.DB) error {
	return tx.Create(&Envelope{
		BudgetID:    b.ID,
		Name:        "Ready to Assign",
		Unallocated: true,
	}).Error
}
