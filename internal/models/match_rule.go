package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchRule maps payee names to envelopes during imports. Match is a glob
// pattern, e.g. "REWE*". Lower priority values win.
type MatchRule struct {
	DefaultModel
	BudgetID   uuid.UUID
	EnvelopeID uuid.UUID
	Priority   uint
	Match      string
}

func (r *MatchRule) BeforeSave(_ *gorm.DB) error {
	r.Match = strings.TrimSpace(r.Match)
	return nil
}

func (r *MatchRule) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*MatchRule)
	return r.checkIntegrity(tx, *toSave)
}

// checkIntegrity verifies references to other resources.
func (r *MatchRule) checkIntegrity(tx *gorm.DB, toSave MatchRule) error {
	err := tx.First(&Budget{}, toSave.BudgetID).Error
	if err != nil {
		return err
	}

	return tx.First(&Envelope{}, toSave.EnvelopeID).Error
}
