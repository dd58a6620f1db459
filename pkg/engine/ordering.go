package engine

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/pouchbudget/backend/pkg/client"
)

// sortOrderSpacing is the gap between generated positions so future
// insertions do not force a renumbering.
const sortOrderSpacing = 10

// SortedGroups returns all groups of the budget ordered by sort order, ties
// broken by name.
func (e *Engine) SortedGroups() []client.EnvelopeGroup {
	e.mu.Lock()
	defer e.mu.Unlock()

	return sortedGroupsLocked(e.groups)
}

func sortedGroupsLocked(groups []client.EnvelopeGroup) []client.EnvelopeGroup {
	sorted := slices.Clone(groups)
	slices.SortStableFunc(sorted, func(a, b client.EnvelopeGroup) int {
		if a.SortOrder != b.SortOrder {
			if a.SortOrder < b.SortOrder {
				return -1
			}
			return 1
		}

		return strings.Compare(a.Name, b.Name)
	})

	return sorted
}

// EnvelopesInGroup returns the envelopes of one group ordered by sort order,
// ties broken by name. A nil groupID selects the ungrouped envelopes.
// Archived envelopes, the unallocated pool and credit card envelopes never
// take part in manual ordering and are excluded.
func (e *Engine) EnvelopesInGroup(groupID *uuid.UUID) []client.Envelope {
	e.mu.Lock()
	defer e.mu.Unlock()

	return envelopesInGroupLocked(e.envelopes, groupID)
}

func envelopesInGroupLocked(envelopes []client.Envelope, groupID *uuid.UUID) []client.Envelope {
	var matching []client.Envelope
	for _, envelope := range envelopes {
		if !orderable(envelope) {
			continue
		}

		if groupID == nil {
			if envelope.GroupID != nil {
				continue
			}
		} else if envelope.GroupID == nil || *envelope.GroupID != *groupID {
			continue
		}

		matching = append(matching, envelope)
	}

	slices.SortStableFunc(matching, func(a, b client.Envelope) int {
		if a.SortOrder != b.SortOrder {
			if a.SortOrder < b.SortOrder {
				return -1
			}
			return 1
		}

		return strings.Compare(a.Name, b.Name)
	})

	return matching
}

// orderable reports whether the envelope takes part in manual ordering.
func orderable(envelope client.Envelope) bool {
	return !envelope.Archived && !envelope.Unallocated && envelope.LinkedAccountID == nil
}

// InitializeSortOrders assigns an initial sort order to every group and
// orderable envelope that does not have one yet. Positions are spaced by
// sortOrderSpacing within each partition. The operation is idempotent: when
// nothing has sort order zero it issues no writes.
//
// Writes happen sequentially in position order so a duplicate target value
// never persists. Afterwards the cache is refreshed.
func (e *Engine) InitializeSortOrders(ctx context.Context) error {
	if err := e.requireBudget(); err != nil {
		return err
	}

	e.mu.Lock()
	groups := sortedGroupsLocked(e.groups)

	// One partition for the groups, one per group for its envelopes and one
	// for the ungrouped envelopes.
	partitions := make([][]client.Envelope, 0, len(groups)+1)
	partitions = append(partitions, envelopesInGroupLocked(e.envelopes, nil))
	for _, group := range groups {
		id := group.ID
		partitions = append(partitions, envelopesInGroupLocked(e.envelopes, &id))
	}
	e.mu.Unlock()

	if !needsInitialization(groups, partitions) {
		return nil
	}

	for index, group := range groups {
		target := uint((index + 1) * sortOrderSpacing)
		if group.SortOrder == target {
			continue
		}

		_, err := e.UpdateEnvelopeGroup(ctx, group.ID, client.EnvelopeGroupPatch{SortOrder: &target})
		if err != nil {
			return err
		}
	}

	for _, partition := range partitions {
		for index, envelope := range partition {
			target := uint((index + 1) * sortOrderSpacing)
			if envelope.SortOrder == target {
				continue
			}

			_, err := e.UpdateEnvelope(ctx, envelope.ID, client.EnvelopePatch{SortOrder: &target})
			if err != nil {
				return err
			}
		}
	}

	return e.FetchAll(ctx)
}

// needsInitialization reports whether any group or orderable envelope still
// has the zero sort order.
func needsInitialization(groups []client.EnvelopeGroup, partitions [][]client.Envelope) bool {
	for _, group := range groups {
		if group.SortOrder == 0 {
			return true
		}
	}

	for _, partition := range partitions {
		for _, envelope := range partition {
			if envelope.SortOrder == 0 {
				return true
			}
		}
	}

	return false
}

// MoveEnvelopeUp swaps the envelope with its predecessor in its partition.
// Moving the first envelope, or one that does not take part in manual
// ordering, does nothing.
func (e *Engine) MoveEnvelopeUp(ctx context.Context, id uuid.UUID) error {
	return e.moveEnvelope(ctx, id, -1)
}

// MoveEnvelopeDown swaps the envelope with its successor in its partition.
// Moving the last envelope, or one that does not take part in manual
// ordering, does nothing.
func (e *Engine) MoveEnvelopeDown(ctx context.Context, id uuid.UUID) error {
	return e.moveEnvelope(ctx, id, 1)
}

func (e *Engine) moveEnvelope(ctx context.Context, id uuid.UUID, direction int) error {
	if err := e.requireBudget(); err != nil {
		return err
	}

	e.mu.Lock()
	var partition []client.Envelope
	for _, envelope := range e.envelopes {
		if envelope.ID == id {
			if !orderable(envelope) {
				e.mu.Unlock()
				return nil
			}

			partition = envelopesInGroupLocked(e.envelopes, envelope.GroupID)
			break
		}
	}
	e.mu.Unlock()

	index := slices.IndexFunc(partition, func(envelope client.Envelope) bool {
		return envelope.ID == id
	})
	if index < 0 {
		return nil
	}

	neighbor := index + direction
	if neighbor < 0 || neighbor >= len(partition) {
		return nil
	}

	return e.swapEnvelopeSortOrders(ctx, partition[index], partition[neighbor])
}

// MoveGroupUp swaps the group with its predecessor. Moving the first group
// does nothing.
func (e *Engine) MoveGroupUp(ctx context.Context, id uuid.UUID) error {
	return e.moveGroup(ctx, id, -1)
}

// MoveGroupDown swaps the group with its successor. Moving the last group
// does nothing.
func (e *Engine) MoveGroupDown(ctx context.Context, id uuid.UUID) error {
	return e.moveGroup(ctx, id, 1)
}

func (e *Engine) moveGroup(ctx context.Context, id uuid.UUID, direction int) error {
	if err := e.requireBudget(); err != nil {
		return err
	}

	groups := e.SortedGroups()
	index := slices.IndexFunc(groups, func(group client.EnvelopeGroup) bool {
		return group.ID == id
	})
	if index < 0 {
		return nil
	}

	neighbor := index + direction
	if neighbor < 0 || neighbor >= len(groups) {
		return nil
	}

	return e.swapGroupSortOrders(ctx, groups[index], groups[neighbor])
}

// swapEnvelopeSortOrders exchanges the sort orders of two envelopes with two
// sequential writes. Between the writes the partition transiently holds a
// duplicate value, the second write resolves it. The reordering flag is set
// for the duration of both writes.
func (e *Engine) swapEnvelopeSortOrders(ctx context.Context, a, b client.Envelope) error {
	e.setReordering(true)
	defer e.setReordering(false)

	_, err := e.UpdateEnvelope(ctx, a.ID, client.EnvelopePatch{SortOrder: &b.SortOrder})
	if err != nil {
		return err
	}

	_, err = e.UpdateEnvelope(ctx, b.ID, client.EnvelopePatch{SortOrder: &a.SortOrder})
	return err
}

func (e *Engine) swapGroupSortOrders(ctx context.Context, a, b client.EnvelopeGroup) error {
	e.setReordering(true)
	defer e.setReordering(false)

	_, err := e.UpdateEnvelopeGroup(ctx, a.ID, client.EnvelopeGroupPatch{SortOrder: &b.SortOrder})
	if err != nil {
		return err
	}

	_, err = e.UpdateEnvelopeGroup(ctx, b.ID, client.EnvelopeGroupPatch{SortOrder: &a.SortOrder})
	return err
}

func (e *Engine) setReordering(value bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reorderLoading = value
}
