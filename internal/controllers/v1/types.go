package v1

import (
	"github.com/pouchbudget/backend/internal/types"
	ez_uuid "github.com/pouchbudget/backend/internal/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type URIEnvelope struct {
	URIID
	EnvelopeID ez_uuid.UUID `uri:"envelopeId" binding:"required" format:"UUID"` // ID of the envelope
}

// QueryDateRange is the inclusive date window for aggregation endpoints.
type QueryDateRange struct {
	From  types.Date `form:"from" example:"2024-03-01"`  // Start of the window, inclusive
	Until types.Date `form:"until" example:"2024-03-31"` // End of the window, inclusive
}

func (q QueryDateRange) validate() error {
	if q.From.IsZero() || q.Until.IsZero() {
		return errDateRequired
	}

	if q.Until.Before(q.From) {
		return errDateRangeInvalid
	}

	return nil
}

// Pagination contains information about the pagination for collection endpoint responses.
type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}
