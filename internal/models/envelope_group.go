package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnvelopeGroup is a user-defined container that organizes envelopes.
type EnvelopeGroup struct {
	DefaultModel
	Budget    Budget    `json:"-"`
	BudgetID  uuid.UUID `gorm:"uniqueIndex:envelope_group_budget_id_name"`
	Name      string    `gorm:"uniqueIndex:envelope_group_budget_id_name"`
	Icon      string
	SortOrder uint // 0 means the sort order has not been initialized yet
}

// BeforeSave trims whitespace from all strings.
func (g *EnvelopeGroup) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Icon = strings.TrimSpace(g.Icon)

	return nil
}

func (g *EnvelopeGroup) BeforeCreate(tx *gorm.DB) error {
	_ = g.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*EnvelopeGroup)
	return tx.First(&Budget{}, toSave.BudgetID).Error
}

// Envelopes returns all envelopes in this group.
func (g EnvelopeGroup) Envelopes(db *gorm.DB) ([]Envelope, error) {
	var envelopes []Envelope

	err := db.Where(&Envelope{GroupID: &g.ID}).Order("sort_order ASC, name ASC").Find(&envelopes).Error
	if err != nil {
		return nil, err
	}

	return envelopes, nil
}
