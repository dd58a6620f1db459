package v1

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pouchbudget/backend/internal/httputil"
	"github.com/pouchbudget/backend/internal/importer"
	"github.com/pouchbudget/backend/internal/models"
	ez_uuid "github.com/pouchbudget/backend/internal/uuid"
	"gorm.io/gorm"
)

type ImportQuery struct {
	AccountID ez_uuid.UUID `form:"accountId" binding:"required"` // ID of the account to import the transactions for
}

type ImportResponse struct {
	Data  []Transaction `json:"data"`                                                          // The created transactions
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// RegisterImportRoutes registers the routes for imports.
func RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsImport)
	r.POST("", Import)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs.
// @Tags			Import
// @Success		204
// @Router			/v1/import [options]
func OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, errWrongFileSuffix
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// @Summary		Import transactions
// @Description	Imports transactions from a CSV bank export into the specified account. Payees become external accounts, match rules assign envelopes.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		201			{object}	ImportResponse
// @Failure		400			{object}	ImportResponse
// @Failure		404			{object}	ImportResponse
// @Failure		500			{object}	ImportResponse
// @Param			file		formData	file	true	"File to import"
// @Param			accountId	query		string	true	"ID of the account to import the transactions for"
// @Router			/v1/import [post]
func Import(c *gin.Context) {
	var query ImportQuery
	if err := c.BindQuery(&query); err != nil {
		s := fmt.Errorf("accountId: %w", err).Error()
		c.JSON(http.StatusBadRequest, ImportResponse{
			Error: &s,
		})
		return
	}

	if query.AccountID == ez_uuid.Nil {
		s := errAccountIDRequired.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{
			Error: &s,
		})
		return
	}

	f, err := getUploadedFile(c, ".csv")
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}

	var account models.Account
	err = models.DB.First(&account, query.AccountID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}

	previews, err := importer.Parse(f, account)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{
			Error: &s,
		})
		return
	}

	// Rules are loaded in priority order so that the first match wins
	var rules []models.MatchRule
	err = models.DB.
		Where(models.MatchRule{BudgetID: account.BudgetID}).
		Order("priority ASC, match ASC").
		Find(&rules).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}

	importer.Match(previews, rules)

	var transactions []models.Transaction
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		for _, preview := range previews {
			payee, err := payeeAccount(tx, account.BudgetID, preview.PayeeName)
			if err != nil {
				return err
			}

			transaction := preview.Transaction
			if preview.Outflow {
				transaction.DestinationAccountID = payee.ID
			} else {
				transaction.SourceAccountID = payee.ID
			}

			if err := tx.Create(&transaction).Error; err != nil {
				return err
			}

			transactions = append(transactions, transaction)
		}

		return nil
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(c, transaction))
	}

	c.JSON(http.StatusCreated, ImportResponse{Data: data})
}

// payeeAccount returns the external account for the payee name,
// creating it if it does not exist yet.
func payeeAccount(tx *gorm.DB, budgetID uuid.UUID, name string) (models.Account, error) {
	var account models.Account
	err := tx.Where(models.Account{
		BudgetID: budgetID,
		Name:     strings.TrimSpace(name),
		External: true,
	}, "BudgetID", "Name", "External").First(&account).Error
	if err == nil {
		return account, nil
	}

	if !errors.Is(err, models.ErrResourceNotFound) {
		return models.Account{}, err
	}

	account = models.Account{
		BudgetID: budgetID,
		Name:     name,
		External: true,
	}
	err = tx.Create(&account).Error

	return account, err
}
