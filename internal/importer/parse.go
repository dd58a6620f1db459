package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pouchbudget/backend/internal/models"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
)

// Columns of the CSV file.
const (
	Date int = iota
	Payee
	Note
	Outflow
	Inflow
)

// Parse reads a bank export CSV file and converts every row into a
// transaction preview for the account passed in.
//
// The expected columns are Date,Payee,Note,Outflow,Inflow with amounts in
// major currency units, e.g. "47.11". Exactly one of Outflow and Inflow must
// be set per row.
func Parse(f io.Reader, account models.Account) ([]TransactionPreview, error) {
	reader := csv.NewReader(f)

	// We can reuse the array in the background to improve performance
	reader.ReuseRecord = true

	var transactions []TransactionPreview

	// Skip the header line
	_, err := reader.Read()
	if err == io.EOF {
		return []TransactionPreview{}, nil
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not read line in CSV: %w", err))
		}

		date, err := time.Parse("2006-01-02", record[Date])
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not parse date: %w", err))
		}

		t := TransactionPreview{
			Transaction: models.Transaction{
				BudgetID: account.BudgetID,
				Date:     date,
				Note:     record[Note],
			},
			PayeeName: record[Payee],
		}

		// Set the direction of the transaction
		if record[Outflow] != "" && record[Inflow] != "" {
			return csvReadError(reader, errors.New("both outflow and inflow are set for the transaction"))
		} else if record[Outflow] == "" && record[Inflow] == "" {
			return csvReadError(reader, errors.New("no amount is set for the transaction"))
		} else if record[Outflow] != "" {
			t.Transaction.SourceAccountID = account.ID
			t.Outflow = true

			amount, err := parseAmount(record[Outflow])
			if err != nil {
				return csvReadError(reader, fmt.Errorf("outflow: %w", err))
			}

			t.Transaction.Amount = amount
		} else {
			t.Transaction.DestinationAccountID = account.ID

			amount, err := parseAmount(record[Inflow])
			if err != nil {
				return csvReadError(reader, fmt.Errorf("inflow: %w", err))
			}

			t.Transaction.Amount = amount
		}

		if t.Transaction.Amount == 0 {
			return csvReadError(reader, errors.New("the amount for a transaction must not be 0"))
		}

		transactions = append(transactions, t)
	}

	return transactions, nil
}

// parseAmount converts a major unit decimal string into minor currency units.
func parseAmount(s string) (int64, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.New("the amount could not be parsed to a decimal")
	}

	minor := amount.Shift(2)
	if !minor.IsInteger() {
		return 0, errors.New("the amount has more than two decimal places")
	}

	if minor.IsNegative() {
		return 0, errors.New("the amount must not be negative")
	}

	return minor.IntPart(), nil
}

// Match assigns envelopes to outflow transactions by applying the match
// rules to the payee name. Rules must be passed in priority order, the
// first matching rule wins.
func Match(transactions []TransactionPreview, rules []models.MatchRule) {
	for i := range transactions {
		t := &transactions[i]

		// Income does not get an envelope, it fills the unallocated pool
		if !t.Outflow {
			continue
		}

		for _, rule := range rules {
			if glob.Glob(rule.Match, t.PayeeName) {
				envelopeID := rule.EnvelopeID
				t.Transaction.EnvelopeID = &envelopeID
				t.MatchRuleID = rule.ID
				break
			}
		}
	}
}

// csvReadError returns an error including the line of the input the error
// occurred in.
func csvReadError(r *csv.Reader, err error) ([]TransactionPreview, error) {
	// always use the first field, we are only interested in the line
	line, _ := r.FieldPos(1)

	return []TransactionPreview{}, fmt.Errorf("error in line %d of the CSV: %w", line, err)
}
