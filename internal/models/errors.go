package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrAccountNameNotUnique       = errors.New("the account name must be unique for the budget")
	ErrGroupNameNotUnique         = errors.New("the envelope group name must be unique for the budget")
	ErrEnvelopeNameNotUnique      = errors.New("the envelope name must be unique for the envelope group")
	ErrBudgetCurrencyInvalid      = errors.New("the currency must be a well-known ISO 4217 code")
	ErrUnallocatedEnvelopeExists  = errors.New("the budget already has an unallocated envelope")
	ErrUnallocatedEnvelopeDeleted = errors.New("the unallocated envelope cannot be deleted")

	ErrTransferAmountNotPositive      = errors.New("transfer amounts must be positive")
	ErrTransferSameEnvelope           = errors.New("source and destination envelope must be different")
	ErrTransferInsufficientFunds      = errors.New("the source envelope does not hold enough money for this transfer")
	ErrTransferEnvelopeBudgetMismatch = errors.New("both envelopes must belong to the budget the transfer is created in")

	ErrTransactionAmountNotPositive = errors.New("transaction amounts must be positive")
	ErrSourceDoesNotEqualDestination = errors.New("source and destination accounts must be different")
)
