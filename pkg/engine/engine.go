// Package engine implements the client side budgeting logic of Pouch Budget.
// It caches the envelopes and envelope groups of a budget, maintains the
// manual ordering of both, aggregates budget summaries over a date window and
// moves money between envelopes.
//
// All remote operations go through the Collaborator interface, which
// client.Client implements.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pouchbudget/backend/internal/types"
	"github.com/pouchbudget/backend/pkg/client"
)

// Collaborator is the API surface the engine depends on.
type Collaborator interface {
	ListEnvelopes(ctx context.Context, budgetID uuid.UUID) ([]client.Envelope, error)
	GetEnvelope(ctx context.Context, id uuid.UUID) (client.Envelope, error)
	CreateEnvelope(ctx context.Context, create client.EnvelopeCreate) (client.Envelope, error)
	UpdateEnvelope(ctx context.Context, id uuid.UUID, patch client.EnvelopePatch) (client.Envelope, error)
	DeleteEnvelope(ctx context.Context, id uuid.UUID) error

	ListEnvelopeGroups(ctx context.Context, budgetID uuid.UUID) ([]client.EnvelopeGroup, error)
	CreateEnvelopeGroup(ctx context.Context, create client.EnvelopeGroupCreate) (client.EnvelopeGroup, error)
	UpdateEnvelopeGroup(ctx context.Context, id uuid.UUID, patch client.EnvelopeGroupPatch) (client.EnvelopeGroup, error)
	DeleteEnvelopeGroup(ctx context.Context, id uuid.UUID) error

	GetEnvelopeSummary(ctx context.Context, budgetID uuid.UUID) (client.EnvelopeSummary, error)
	GetBudgetSummary(ctx context.Context, budgetID uuid.UUID, from, until types.Date) (client.BudgetSummary, error)
	GetEnvelopeActivity(ctx context.Context, budgetID, envelopeID uuid.UUID, from, until types.Date) ([]client.ActivityLine, error)
	TransferBetweenEnvelopes(ctx context.Context, budgetID uuid.UUID, transfer client.Transfer) ([]client.Allocation, error)
}

// Engine holds the budgeting state for one selected budget.
type Engine struct {
	mu  sync.Mutex
	api Collaborator
	now func() time.Time

	budgetID uuid.UUID

	envelopes []client.Envelope
	groups    []client.EnvelopeGroup

	readyToAssign          int64
	unfundedCreditCardDebt int64

	from  types.Date
	until types.Date

	summary *client.BudgetSummary
	// Incremented whenever the budget or the date range changes. Responses
	// from requests started under an older generation are discarded.
	summaryGeneration uint64

	reorderLoading bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the time source, used for the date range presets.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New returns an engine using the given collaborator. No budget is selected
// yet, the date range defaults to the current month.
func New(api Collaborator, options ...Option) *Engine {
	e := &Engine{
		api: api,
		now: time.Now,
	}

	for _, option := range options {
		option(e)
	}

	today := types.DateOf(e.now())
	e.from = today.FirstOfMonth()
	e.until = today

	return e
}

// SelectBudget switches the engine to the given budget. All cached state of
// the previous budget is dropped, call FetchAll afterwards to load the new
// one.
func (e *Engine) SelectBudget(id uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.budgetID = id
	e.envelopes = nil
	e.groups = nil
	e.readyToAssign = 0
	e.unfundedCreditCardDebt = 0
	e.summary = nil
	e.summaryGeneration++
}

// BudgetID returns the ID of the selected budget, uuid.Nil if none is
// selected.
func (e *Engine) BudgetID() uuid.UUID {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.budgetID
}

// Reordering reports whether a sort order swap is in flight. It is advisory,
// consumers use it to disable their reordering controls.
func (e *Engine) Reordering() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.reorderLoading
}
