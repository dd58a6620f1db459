package importer

import (
	"github.com/google/uuid"
	"github.com/pouchbudget/backend/internal/models"
)

// TransactionPreview is a parsed CSV row together with the information
// needed to resolve it into a transaction.
type TransactionPreview struct {
	Transaction models.Transaction `json:"transaction"`
	PayeeName   string             `json:"payeeName" example:"Supermarket"`                            // Name of the payee from the CSV file
	Outflow     bool               `json:"outflow" example:"true"`                                     // Does money leave the account?
	MatchRuleID uuid.UUID          `json:"matchRuleId" example:"042d101d-f1de-4403-9295-59dc0ea58677"` // ID of the match rule that assigned the envelope, if any
}
