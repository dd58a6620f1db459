package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pouchbudget/backend/internal/models"
	ez_uuid "github.com/pouchbudget/backend/internal/uuid"
	"gorm.io/gorm"
)

// EnvelopeEditable represents all user configurable parameters
type EnvelopeEditable struct {
	Name            string     `json:"name" example:"Groceries" default:""`                            // Name of the envelope
	BudgetID        uuid.UUID  `json:"budgetId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"`        // ID of the budget the envelope belongs to
	GroupID         *uuid.UUID `json:"groupId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`         // ID of the envelope group, null for ungrouped envelopes
	Description     string     `json:"description" example:"Everything for the kitchen" default:""`   // A longer description
	Icon            string     `json:"icon" example:"🥦" default:""`                                    // Icon shown next to the name
	LinkedAccountID *uuid.UUID `json:"linkedAccountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // ID of the credit card account this envelope covers, null if none
	Archived        bool       `json:"archived" example:"true" default:"false"`                        // Is the envelope archived?
	Starred         bool       `json:"starred" example:"true" default:"false"`                         // Is the envelope pinned?
	TargetBalance   *int64     `json:"targetBalance" example:"50000"`                                  // Balance the user wants to keep in the envelope, in minor currency units
	SortOrder       uint       `json:"sortOrder" example:"20" default:"0"`                             // Position in the envelope list, 0 if not yet ordered
}

func (editable EnvelopeEditable) model() models.Envelope {
	return models.Envelope{
		Name:            editable.Name,
		BudgetID:        editable.BudgetID,
		GroupID:         editable.GroupID,
		Description:     editable.Description,
		Icon:            editable.Icon,
		LinkedAccountID: editable.LinkedAccountID,
		Archived:        editable.Archived,
		Starred:         editable.Starred,
		TargetBalance:   editable.TargetBalance,
		SortOrder:       editable.SortOrder,
	}
}

// EnvelopePatch contains the fields that can be changed after creation.
// The budget reference and the unallocated flag are fixed for the lifetime
// of the envelope.
type EnvelopePatch struct {
	Name            string     `json:"name" example:"Groceries"`
	GroupID         *uuid.UUID `json:"groupId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // Set to the nil UUID to ungroup the envelope
	Description     string     `json:"description" example:"Everything for the kitchen"`
	Icon            string     `json:"icon" example:"🥦"`
	LinkedAccountID *uuid.UUID `json:"linkedAccountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`
	Archived        bool       `json:"archived" example:"true"`
	Starred         bool       `json:"starred" example:"true"`
	TargetBalance   *int64     `json:"targetBalance" example:"50000"`
	SortOrder       uint       `json:"sortOrder" example:"20"`
}

func (patch EnvelopePatch) model() models.Envelope {
	return models.Envelope{
		Name:            patch.Name,
		GroupID:         patch.GroupID,
		Description:     patch.Description,
		Icon:            patch.Icon,
		LinkedAccountID: patch.LinkedAccountID,
		Archived:        patch.Archived,
		Starred:         patch.Starred,
		TargetBalance:   patch.TargetBalance,
		SortOrder:       patch.SortOrder,
	}
}

type EnvelopeLinks struct {
	Self         string `json:"self" example:"https://example.com/v1/envelopes/45b6b5b9-f746-4ae9-b77b-7688b91f8166"`                                                       // The envelope itself
	Transactions string `json:"transactions" example:"https://example.com/v1/transactions?envelope=45b6b5b9-f746-4ae9-b77b-7688b91f8166"`                                  // Transactions assigned to the envelope
	Activity     string `json:"activity" example:"https://example.com/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf/envelopes/45b6b5b9-f746-4ae9-b77b-7688b91f8166/activity"` // Line-itemized activity
}

type Envelope struct {
	models.DefaultModel
	EnvelopeEditable
	Unallocated bool          `json:"unallocated" example:"false"` // Is this the "Ready to Assign" pool of the budget?
	Links       EnvelopeLinks `json:"links"`

	// These fields are computed
	Balance int64 `json:"balance" example:"54023"` // As-of-now balance of the envelope, in minor currency units
}

func newEnvelope(c *gin.Context, db *gorm.DB, model models.Envelope) (Envelope, error) {
	url := c.GetString(string(models.DBContextURL))

	balance, err := model.Balance(db)
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{
		DefaultModel: model.DefaultModel,
		EnvelopeEditable: EnvelopeEditable{
			Name:            model.Name,
			BudgetID:        model.BudgetID,
			GroupID:         model.GroupID,
			Description:     model.Description,
			Icon:            model.Icon,
			LinkedAccountID: model.LinkedAccountID,
			Archived:        model.Archived,
			Starred:         model.Starred,
			TargetBalance:   model.TargetBalance,
			SortOrder:       model.SortOrder,
		},
		Unallocated: model.Unallocated,
		Balance:     balance,
		Links: EnvelopeLinks{
			Self:         fmt.Sprintf("%s/v1/envelopes/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?envelope=%s", url, model.ID),
			Activity:     fmt.Sprintf("%s/v1/budgets/%s/envelopes/%s/activity", url, model.BudgetID, model.ID),
		},
	}, nil
}

type EnvelopeListResponse struct {
	Data       []Envelope  `json:"data"`                                                          // List of envelopes
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type EnvelopeCreateResponse struct {
	Data  []EnvelopeResponse `json:"data"`                                                          // List of the created envelopes or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (e *EnvelopeCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	e.Data = append(e.Data, EnvelopeResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type EnvelopeResponse struct {
	Data  *Envelope `json:"data"`                                                          // Data for the envelope
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type EnvelopeQueryFilter struct {
	BudgetID    ez_uuid.UUID `form:"budget"`                     // By ID of the budget
	GroupID     ez_uuid.UUID `form:"group"`                      // By ID of the envelope group
	Name        string       `form:"name" filterField:"false"`        // By name
	Description string       `form:"description" filterField:"false"` // By the description
	Archived    bool         `form:"archived"`                   // Is the envelope archived?
	Starred     bool         `form:"starred"`                    // Is the envelope pinned?
	Unallocated bool         `form:"unallocated"`                // Is this the "Ready to Assign" pool?
	Search      string       `form:"search" filterField:"false"` // By string in name or description
	Offset      uint         `form:"offset" filterField:"false"` // The offset of the first envelope returned. Defaults to 0.
	Limit       int          `form:"limit" filterField:"false"`  // Maximum number of envelopes to return. Defaults to 50.
}

func (f EnvelopeQueryFilter) model() models.Envelope {
	var groupID *uuid.UUID
	if f.GroupID.UUID != uuid.Nil {
		groupID = &f.GroupID.UUID
	}

	return models.Envelope{
		BudgetID:    f.BudgetID.UUID,
		GroupID:     groupID,
		Archived:    f.Archived,
		Starred:     f.Starred,
		Unallocated: f.Unallocated,
	}
}
