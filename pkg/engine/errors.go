package engine

import "errors"

var (
	// ErrNoBudgetSelected is returned when an operation needs a selected
	// budget and none is.
	ErrNoBudgetSelected = errors.New("no budget is selected")

	// ErrLoad is returned when fetching envelopes, groups or the headline
	// figures fails. The previously cached state is kept.
	ErrLoad = errors.New("loading the budget data failed")

	// ErrSummaryLoad is returned when fetching the budget summary fails.
	// The previously cached summary is kept.
	ErrSummaryLoad = errors.New("loading the budget summary failed")

	// ErrTransfer is returned when a transfer between envelopes fails. No
	// money has moved. Callers must not retry automatically since a retry
	// risks a double transfer.
	ErrTransfer = errors.New("the transfer failed")
)
