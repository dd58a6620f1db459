package client

import (
	"time"

	"github.com/google/uuid"
	"github.com/pouchbudget/backend/internal/types"
)

// Envelope is an envelope as returned by the API.
type Envelope struct {
	ID              uuid.UUID  `json:"id"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	Name            string     `json:"name"`
	BudgetID        uuid.UUID  `json:"budgetId"`
	GroupID         *uuid.UUID `json:"groupId"`
	Description     string     `json:"description"`
	Icon            string     `json:"icon"`
	LinkedAccountID *uuid.UUID `json:"linkedAccountId"`
	Archived        bool       `json:"archived"`
	Starred         bool       `json:"starred"`
	Unallocated     bool       `json:"unallocated"`
	TargetBalance   *int64     `json:"targetBalance"`
	SortOrder       uint       `json:"sortOrder"`
	Balance         int64      `json:"balance"` // As of now, in minor currency units
}

// EnvelopeCreate contains the fields settable on envelope creation.
type EnvelopeCreate struct {
	Name            string     `json:"name"`
	BudgetID        uuid.UUID  `json:"budgetId"`
	GroupID         *uuid.UUID `json:"groupId,omitempty"`
	Description     string     `json:"description,omitempty"`
	Icon            string     `json:"icon,omitempty"`
	LinkedAccountID *uuid.UUID `json:"linkedAccountId,omitempty"`
	Starred         bool       `json:"starred,omitempty"`
	TargetBalance   *int64     `json:"targetBalance,omitempty"`
	SortOrder       uint       `json:"sortOrder,omitempty"`
}

// EnvelopePatch is a partial update for an envelope. Only fields that are
// set are sent, everything else keeps its current value.
type EnvelopePatch struct {
	Name            *string    `json:"name,omitempty"`
	GroupID         *uuid.UUID `json:"groupId,omitempty"` // The nil UUID ungroups the envelope
	Description     *string    `json:"description,omitempty"`
	Icon            *string    `json:"icon,omitempty"`
	LinkedAccountID *uuid.UUID `json:"linkedAccountId,omitempty"`
	Archived        *bool      `json:"archived,omitempty"`
	Starred         *bool      `json:"starred,omitempty"`
	TargetBalance   *int64     `json:"targetBalance,omitempty"`
	SortOrder       *uint      `json:"sortOrder,omitempty"`
}

// EnvelopeGroup is an envelope group as returned by the API.
type EnvelopeGroup struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `json:"name"`
	BudgetID  uuid.UUID `json:"budgetId"`
	Icon      string    `json:"icon"`
	SortOrder uint      `json:"sortOrder"`
}

// EnvelopeGroupCreate contains the fields settable on group creation.
type EnvelopeGroupCreate struct {
	Name      string    `json:"name"`
	BudgetID  uuid.UUID `json:"budgetId"`
	Icon      string    `json:"icon,omitempty"`
	SortOrder uint      `json:"sortOrder,omitempty"`
}

// EnvelopeGroupPatch is a partial update for an envelope group.
type EnvelopeGroupPatch struct {
	Name      *string `json:"name,omitempty"`
	Icon      *string `json:"icon,omitempty"`
	SortOrder *uint   `json:"sortOrder,omitempty"`
}

// EnvelopeSummary holds the headline figures of a budget.
type EnvelopeSummary struct {
	ReadyToAssign          int64 `json:"readyToAssign"`
	UnfundedCreditCardDebt int64 `json:"unfundedCreditCardDebt"`
}

// EnvelopePeriod is the per-envelope part of a budget summary.
type EnvelopePeriod struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Activity      int64      `json:"activity"` // Net sum of postings within the window
	Balance       int64      `json:"balance"`  // As of now, independent of the window
	TargetBalance *int64     `json:"targetBalance"`
	Starred       bool       `json:"starred"`
	LinkedAccount *uuid.UUID `json:"linkedAccountId"`
}

// GroupPeriod aggregates the envelopes of one group.
type GroupPeriod struct {
	ID        *uuid.UUID       `json:"id"` // nil for the ungrouped bucket
	Name      string           `json:"name"`
	Icon      string           `json:"icon"`
	Activity  int64            `json:"activity"`
	Balance   int64            `json:"balance"`
	Envelopes []EnvelopePeriod `json:"envelopes"`
}

// BudgetSummary is the aggregate for a budget over a date window.
type BudgetSummary struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	From          types.Date    `json:"from"`
	Until         types.Date    `json:"until"`
	ReadyToAssign int64         `json:"readyToAssign"`
	Income        int64         `json:"income"`
	Spent         int64         `json:"spent"`
	Assigned      int64         `json:"assigned"`
	Groups        []GroupPeriod `json:"groups"`
}

// ActivityLine is one posting in the line-itemized activity of an envelope.
type ActivityLine struct {
	ID     uuid.UUID  `json:"id"`
	Kind   string     `json:"kind"` // "transaction" or "transfer"
	Date   time.Time  `json:"date"`
	Amount int64      `json:"amount"`
	Note   string     `json:"note"`
	PairID *uuid.UUID `json:"pairId"`
}

// Transfer moves money between two envelopes of a budget.
type Transfer struct {
	FromEnvelopeID uuid.UUID `json:"fromEnvelopeId"`
	ToEnvelopeID   uuid.UUID `json:"toEnvelopeId"`
	Amount         int64     `json:"amount"`
	Note           string    `json:"note,omitempty"`
}

// Allocation is one half of a transfer between envelopes.
type Allocation struct {
	ID         uuid.UUID `json:"id"`
	EnvelopeID uuid.UUID `json:"envelopeId"`
	PairID     uuid.UUID `json:"pairId"`
	Date       time.Time `json:"date"`
	Amount     int64     `json:"amount"`
	Note       string    `json:"note"`
}
