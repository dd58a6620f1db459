package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pouchbudget/backend/pkg/client"
)

// FetchAll replaces the cached envelopes, groups and headline figures with
// the current remote state. Without a selected budget it does nothing. On
// failure the previous state is kept and ErrLoad is returned.
func (e *Engine) FetchAll(ctx context.Context) error {
	e.mu.Lock()
	budgetID := e.budgetID
	e.mu.Unlock()

	if budgetID == uuid.Nil {
		return nil
	}

	envelopes, err := e.api.ListEnvelopes(ctx, budgetID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	groups, err := e.api.ListEnvelopeGroups(ctx, budgetID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	summary, err := e.api.GetEnvelopeSummary(ctx, budgetID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// The budget changed while the requests were in flight
	if e.budgetID != budgetID {
		return nil
	}

	e.envelopes = envelopes
	e.groups = groups
	e.readyToAssign = summary.ReadyToAssign
	e.unfundedCreditCardDebt = summary.UnfundedCreditCardDebt

	return nil
}

// FetchEnvelope refreshes a single envelope and upserts it into the cache.
func (e *Engine) FetchEnvelope(ctx context.Context, id uuid.UUID) error {
	if err := e.requireBudget(); err != nil {
		return err
	}

	envelope, err := e.api.GetEnvelope(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.envelopes {
		if e.envelopes[i].ID == envelope.ID {
			e.envelopes[i] = envelope
			return nil
		}
	}

	e.envelopes = append(e.envelopes, envelope)
	return nil
}

// CreateEnvelope creates an envelope in the selected budget and adds it to
// the cache.
func (e *Engine) CreateEnvelope(ctx context.Context, create client.EnvelopeCreate) (client.Envelope, error) {
	if err := e.requireBudget(); err != nil {
		return client.Envelope{}, err
	}

	create.BudgetID = e.BudgetID()

	envelope, err := e.api.CreateEnvelope(ctx, create)
	if err != nil {
		return client.Envelope{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.envelopes = append(e.envelopes, envelope)

	return envelope, nil
}

// UpdateEnvelope applies a partial update and mirrors the result in the
// cache.
func (e *Engine) UpdateEnvelope(ctx context.Context, id uuid.UUID, patch client.EnvelopePatch) (client.Envelope, error) {
	if err := e.requireBudget(); err != nil {
		return client.Envelope{}, err
	}

	envelope, err := e.api.UpdateEnvelope(ctx, id, patch)
	if err != nil {
		return client.Envelope{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.envelopes {
		if e.envelopes[i].ID == id {
			e.envelopes[i] = envelope
			break
		}
	}

	return envelope, nil
}

// DeleteEnvelope deletes the envelope and removes it from the cache.
func (e *Engine) DeleteEnvelope(ctx context.Context, id uuid.UUID) error {
	if err := e.requireBudget(); err != nil {
		return err
	}

	if err := e.api.DeleteEnvelope(ctx, id); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.envelopes {
		if e.envelopes[i].ID == id {
			e.envelopes = append(e.envelopes[:i], e.envelopes[i+1:]...)
			break
		}
	}

	return nil
}

// CreateEnvelopeGroup creates a group in the selected budget and adds it to
// the cache.
func (e *Engine) CreateEnvelopeGroup(ctx context.Context, create client.EnvelopeGroupCreate) (client.EnvelopeGroup, error) {
	if err := e.requireBudget(); err != nil {
		return client.EnvelopeGroup{}, err
	}

	create.BudgetID = e.BudgetID()

	group, err := e.api.CreateEnvelopeGroup(ctx, create)
	if err != nil {
		return client.EnvelopeGroup{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.groups = append(e.groups, group)

	return group, nil
}

// UpdateEnvelopeGroup applies a partial update and mirrors the result in the
// cache.
func (e *Engine) UpdateEnvelopeGroup(ctx context.Context, id uuid.UUID, patch client.EnvelopeGroupPatch) (client.EnvelopeGroup, error) {
	if err := e.requireBudget(); err != nil {
		return client.EnvelopeGroup{}, err
	}

	group, err := e.api.UpdateEnvelopeGroup(ctx, id, patch)
	if err != nil {
		return client.EnvelopeGroup{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.groups {
		if e.groups[i].ID == id {
			e.groups[i] = group
			break
		}
	}

	return group, nil
}

// DeleteEnvelopeGroup deletes the group and removes it from the cache. The
// envelopes of the group become ungrouped, which the next FetchAll reflects.
func (e *Engine) DeleteEnvelopeGroup(ctx context.Context, id uuid.UUID) error {
	if err := e.requireBudget(); err != nil {
		return err
	}

	if err := e.api.DeleteEnvelopeGroup(ctx, id); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.groups {
		if e.groups[i].ID == id {
			e.groups = append(e.groups[:i], e.groups[i+1:]...)
			break
		}
	}

	for i := range e.envelopes {
		if e.envelopes[i].GroupID != nil && *e.envelopes[i].GroupID == id {
			e.envelopes[i].GroupID = nil
		}
	}

	return nil
}

func (e *Engine) requireBudget() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.budgetID == uuid.Nil {
		return ErrNoBudgetSelected
	}

	return nil
}
