package v1

import (
	"errors"
	"net/http"

	"github.com/pouchbudget/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errDateRangeInvalid = errors.New("the 'until' date must not be before the 'from' date")
	errDateRequired     = errors.New("the 'from' and 'until' query parameters must be set")
)

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)

// Import errors
var (
	errNoFilePost        = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix   = errors.New("this endpoint only supports csv files")
	errAccountIDRequired = errors.New("the accountId parameter must be set")
)
