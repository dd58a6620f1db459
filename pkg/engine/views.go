package engine

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/pouchbudget/backend/pkg/client"
)

// Envelopes returns all cached envelopes in repository order.
func (e *Engine) Envelopes() []client.Envelope {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.envelopes)
}

// Groups returns all cached envelope groups in repository order.
func (e *Engine) Groups() []client.EnvelopeGroup {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.groups)
}

// ReadyToAssign returns the balance of the unallocated pool as of the last
// refresh.
func (e *Engine) ReadyToAssign() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.readyToAssign
}

// UnfundedCreditCardDebt returns the credit card debt not covered by the
// linked envelopes as of the last refresh.
func (e *Engine) UnfundedCreditCardDebt() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.unfundedCreditCardDebt
}

// TotalBudgeted returns the sum of the balances of all active envelopes,
// excluding the unallocated pool.
func (e *Engine) TotalBudgeted() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	var total int64
	for _, envelope := range e.envelopes {
		if envelope.Archived || envelope.Unallocated {
			continue
		}

		total += envelope.Balance
	}

	return total
}

// UnallocatedEnvelope returns the envelope holding the budget's unassigned
// money. The second return value is false when the cache is empty.
func (e *Engine) UnallocatedEnvelope() (client.Envelope, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, envelope := range e.envelopes {
		if envelope.Unallocated {
			return envelope, true
		}
	}

	return client.Envelope{}, false
}

// UnallocatedBalance returns the balance of the unallocated envelope, zero
// when the cache is empty.
func (e *Engine) UnallocatedBalance() int64 {
	envelope, ok := e.UnallocatedEnvelope()
	if !ok {
		return 0
	}

	return envelope.Balance
}

// ActiveEnvelopes returns the active envelopes of the budget ordered by sort
// order, excluding the unallocated pool.
func (e *Engine) ActiveEnvelopes() []client.Envelope {
	e.mu.Lock()
	defer e.mu.Unlock()

	var active []client.Envelope
	for _, envelope := range e.envelopes {
		if envelope.Archived || envelope.Unallocated {
			continue
		}

		active = append(active, envelope)
	}

	slices.SortStableFunc(active, func(a, b client.Envelope) int {
		if a.SortOrder != b.SortOrder {
			if a.SortOrder < b.SortOrder {
				return -1
			}
			return 1
		}

		return strings.Compare(a.Name, b.Name)
	})

	return active
}

// OverspentEnvelopes returns the active envelopes with a negative balance.
func (e *Engine) OverspentEnvelopes() []client.Envelope {
	var overspent []client.Envelope
	for _, envelope := range e.ActiveEnvelopes() {
		if envelope.Balance < 0 {
			overspent = append(overspent, envelope)
		}
	}

	return overspent
}

// CreditCardEnvelopes returns the active envelopes linked to a credit card
// account, ordered by name.
func (e *Engine) CreditCardEnvelopes() []client.Envelope {
	e.mu.Lock()
	defer e.mu.Unlock()

	var linked []client.Envelope
	for _, envelope := range e.envelopes {
		if envelope.Archived || envelope.LinkedAccountID == nil {
			continue
		}

		linked = append(linked, envelope)
	}

	slices.SortStableFunc(linked, func(a, b client.Envelope) int {
		return strings.Compare(a.Name, b.Name)
	})

	return linked
}

// StarredEnvelopes returns the pinned active envelopes ordered by name,
// excluding the unallocated pool.
func (e *Engine) StarredEnvelopes() []client.Envelope {
	e.mu.Lock()
	defer e.mu.Unlock()

	var starred []client.Envelope
	for _, envelope := range e.envelopes {
		if envelope.Archived || envelope.Unallocated || !envelope.Starred {
			continue
		}

		starred = append(starred, envelope)
	}

	slices.SortStableFunc(starred, func(a, b client.Envelope) int {
		return strings.Compare(a.Name, b.Name)
	})

	return starred
}

// EnvelopesByGroup returns the active envelopes of the budget keyed by their
// group ID, in repository order. Ungrouped envelopes are keyed by uuid.Nil.
// Callers needing the manual order use EnvelopesInGroup instead.
func (e *Engine) EnvelopesByGroup() map[uuid.UUID][]client.Envelope {
	e.mu.Lock()
	defer e.mu.Unlock()

	byGroup := make(map[uuid.UUID][]client.Envelope)
	for _, envelope := range e.envelopes {
		if envelope.Archived || envelope.Unallocated {
			continue
		}

		key := uuid.Nil
		if envelope.GroupID != nil {
			key = *envelope.GroupID
		}

		byGroup[key] = append(byGroup[key], envelope)
	}

	return byGroup
}
