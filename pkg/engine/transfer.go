package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pouchbudget/backend/pkg/client"
)

// Transfer moves amount minor units from one envelope to another and
// refreshes the cache so balances and the ready to assign figure reflect the
// move. On failure no money has moved and ErrTransfer is returned. Transfers
// are never retried automatically.
func (e *Engine) Transfer(ctx context.Context, fromEnvelopeID, toEnvelopeID uuid.UUID, amount int64, note string) error {
	if err := e.requireBudget(); err != nil {
		return err
	}

	if amount <= 0 {
		return fmt.Errorf("%w: the amount must be positive", ErrTransfer)
	}

	_, err := e.api.TransferBetweenEnvelopes(ctx, e.BudgetID(), client.Transfer{
		FromEnvelopeID: fromEnvelopeID,
		ToEnvelopeID:   toEnvelopeID,
		Amount:         amount,
		Note:           note,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransfer, err)
	}

	return e.FetchAll(ctx)
}

// Assignment is one entry of an assignment plan, funding an envelope from
// the unallocated pool.
type Assignment struct {
	EnvelopeID uuid.UUID
	Amount     int64
}

// ApplyAssignmentPlan funds the envelopes of the plan from the unallocated
// pool, one transfer per entry, in order. On the first failure no further
// entries are applied and the already applied ones stay applied, there is no
// rollback. The cache is refreshed in both cases so callers see the state
// the plan actually reached.
func (e *Engine) ApplyAssignmentPlan(ctx context.Context, plan []Assignment) error {
	if err := e.requireBudget(); err != nil {
		return err
	}

	unallocated, ok := e.UnallocatedEnvelope()
	if !ok {
		return fmt.Errorf("%w: the budget has no unallocated envelope", ErrTransfer)
	}

	var transferErr error
	for _, assignment := range plan {
		if assignment.Amount <= 0 {
			transferErr = fmt.Errorf("%w: the amount must be positive", ErrTransfer)
			break
		}

		_, err := e.api.TransferBetweenEnvelopes(ctx, e.BudgetID(), client.Transfer{
			FromEnvelopeID: unallocated.ID,
			ToEnvelopeID:   assignment.EnvelopeID,
			Amount:         assignment.Amount,
		})
		if err != nil {
			transferErr = fmt.Errorf("%w: %w", ErrTransfer, err)
			break
		}
	}

	if err := e.FetchAll(ctx); err != nil {
		return errors.Join(transferErr, err)
	}

	return transferErr
}
