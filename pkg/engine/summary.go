package engine

import (
	"context"
	"fmt"

	"github.com/pouchbudget/backend/internal/types"
	"github.com/pouchbudget/backend/pkg/client"

	"github.com/google/uuid"
)

// DateRangePreset selects how the summary date window is derived.
type DateRangePreset string

const (
	PresetThisMonth   DateRangePreset = "this_month"
	PresetLastMonth   DateRangePreset = "last_month"
	PresetLast3Months DateRangePreset = "last_3_months"
	PresetYearToDate  DateRangePreset = "year_to_date"
	PresetCustom      DateRangePreset = "custom"
)

// SetDateRange sets the summary window from a preset. All presets except
// last_month end today, last_month ends on the last calendar day of the
// previous month. The custom preset takes both bounds explicitly; when
// either is missing the previous window is kept.
//
// Changing the window invalidates summary requests that are still in
// flight, their responses are dropped on arrival.
func (e *Engine) SetDateRange(preset DateRangePreset, customFrom, customUntil *types.Date) {
	e.mu.Lock()
	defer e.mu.Unlock()

	today := types.DateOf(e.now())

	var from, until types.Date
	switch preset {
	case PresetThisMonth:
		from = today.FirstOfMonth()
		until = today
	case PresetLastMonth:
		until = today.LastOfPreviousMonth()
		from = until.FirstOfMonth()
	case PresetLast3Months:
		from = today.FirstOfMonth().AddDate(0, -2, 0)
		until = today
	case PresetYearToDate:
		from = today.FirstOfYear()
		until = today
	case PresetCustom:
		if customFrom == nil || customUntil == nil {
			return
		}
		from = *customFrom
		until = *customUntil
	default:
		return
	}

	e.from = from
	e.until = until
	e.summaryGeneration++
}

// DateRange returns the bounds of the current summary window, both inclusive.
func (e *Engine) DateRange() (from, until types.Date) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.from, e.until
}

// Summary returns the cached budget summary, nil when none has been fetched
// yet.
func (e *Engine) Summary() *client.BudgetSummary {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.summary
}

// FetchBudgetSummary loads the grouped aggregate for the current date window
// and caches it. On failure the previous summary is kept and ErrSummaryLoad
// is returned, consumers keep showing the stale data next to the error.
//
// A response that arrives after the window or the budget changed is
// discarded, so out of order completions cannot overwrite a newer summary.
func (e *Engine) FetchBudgetSummary(ctx context.Context) error {
	e.mu.Lock()
	budgetID := e.budgetID
	from := e.from
	until := e.until
	generation := e.summaryGeneration
	e.mu.Unlock()

	if budgetID == uuid.Nil {
		return ErrNoBudgetSelected
	}

	summary, err := e.api.GetBudgetSummary(ctx, budgetID, from, until)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSummaryLoad, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Stale response, a newer window or budget has been selected meanwhile
	if generation != e.summaryGeneration {
		return nil
	}

	e.summary = &summary
	return nil
}

// FetchEnvelopeActivity returns the line-itemized activity of one envelope
// over the current date window, newest first. The cached summary is not
// touched.
func (e *Engine) FetchEnvelopeActivity(ctx context.Context, envelopeID uuid.UUID) ([]client.ActivityLine, error) {
	e.mu.Lock()
	budgetID := e.budgetID
	from := e.from
	until := e.until
	e.mu.Unlock()

	if budgetID == uuid.Nil {
		return nil, ErrNoBudgetSelected
	}

	lines, err := e.api.GetEnvelopeActivity(ctx, budgetID, envelopeID, from, until)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSummaryLoad, err)
	}

	return lines, nil
}
