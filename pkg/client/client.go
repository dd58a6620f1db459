// Package client provides an HTTP client for the Pouch Budget API. It covers
// the resources the budgeting engine works with: envelopes, envelope groups,
// summaries and transfers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pouchbudget/backend/internal/types"
)

// APIError is an error response from the API.
type APIError struct {
	Status  int    // The HTTP status code of the response
	Message string // The error string the API returned
}

func (e APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("the API responded with status %d", e.Status)
	}

	return fmt.Sprintf("the API responded with status %d: %s", e.Status, e.Message)
}

// Client calls the Pouch Budget API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the API at baseURL, e.g. "https://budget.example.com".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewWithHTTPClient returns a client using a caller-supplied http.Client.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// response is the envelope every API endpoint wraps its payload in.
type response[T any] struct {
	Data  T       `json:"data"`
	Error *string `json:"error"`
}

// createResponse is the envelope of batch create endpoints. Each element
// carries either the created resource or the error that prevented it.
type createResponse[T any] struct {
	Data []struct {
		Data  *T      `json:"data"`
		Error *string `json:"error"`
	} `json:"data"`
	Error *string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, target any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode >= 400 {
		return APIError{Status: res.StatusCode, Message: errorMessage(raw)}
	}

	if target == nil {
		return nil
	}

	return json.Unmarshal(raw, target)
}

// ListEnvelopes returns all envelopes of the budget, including archived ones
// and the unallocated pool.
func (c *Client) ListEnvelopes(ctx context.Context, budgetID uuid.UUID) ([]Envelope, error) {
	query := url.Values{}
	query.Set("budget", budgetID.String())
	query.Set("limit", "-1")

	var envelope response[[]Envelope]
	err := c.do(ctx, http.MethodGet, "/v1/envelopes", query, nil, &envelope)
	if err != nil {
		return nil, err
	}

	return envelope.Data, nil
}

// GetEnvelope returns a single envelope.
func (c *Client) GetEnvelope(ctx context.Context, id uuid.UUID) (Envelope, error) {
	var envelope response[Envelope]
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/envelopes/%s", id), nil, nil, &envelope)
	if err != nil {
		return Envelope{}, err
	}

	return envelope.Data, nil
}

// CreateEnvelope creates a new envelope.
func (c *Client) CreateEnvelope(ctx context.Context, create EnvelopeCreate) (Envelope, error) {
	var envelope createResponse[Envelope]
	err := c.do(ctx, http.MethodPost, "/v1/envelopes", nil, []EnvelopeCreate{create}, &envelope)
	if err != nil {
		return Envelope{}, err
	}

	return firstCreated(envelope)
}

// UpdateEnvelope applies a partial update to the envelope.
func (c *Client) UpdateEnvelope(ctx context.Context, id uuid.UUID, patch EnvelopePatch) (Envelope, error) {
	var envelope response[Envelope]
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/v1/envelopes/%s", id), nil, patch, &envelope)
	if err != nil {
		return Envelope{}, err
	}

	return envelope.Data, nil
}

// DeleteEnvelope deletes the envelope.
func (c *Client) DeleteEnvelope(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/envelopes/%s", id), nil, nil, nil)
}

// ListEnvelopeGroups returns all envelope groups of the budget.
func (c *Client) ListEnvelopeGroups(ctx context.Context, budgetID uuid.UUID) ([]EnvelopeGroup, error) {
	query := url.Values{}
	query.Set("budget", budgetID.String())
	query.Set("limit", "-1")

	var envelope response[[]EnvelopeGroup]
	err := c.do(ctx, http.MethodGet, "/v1/envelope-groups", query, nil, &envelope)
	if err != nil {
		return nil, err
	}

	return envelope.Data, nil
}

// GetEnvelopeGroup returns a single envelope group.
func (c *Client) GetEnvelopeGroup(ctx context.Context, id uuid.UUID) (EnvelopeGroup, error) {
	var envelope response[EnvelopeGroup]
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/envelope-groups/%s", id), nil, nil, &envelope)
	if err != nil {
		return EnvelopeGroup{}, err
	}

	return envelope.Data, nil
}

// CreateEnvelopeGroup creates a new envelope group.
func (c *Client) CreateEnvelopeGroup(ctx context.Context, create EnvelopeGroupCreate) (EnvelopeGroup, error) {
	var envelope createResponse[EnvelopeGroup]
	err := c.do(ctx, http.MethodPost, "/v1/envelope-groups", nil, []EnvelopeGroupCreate{create}, &envelope)
	if err != nil {
		return EnvelopeGroup{}, err
	}

	return firstCreated(envelope)
}

// UpdateEnvelopeGroup applies a partial update to the envelope group.
func (c *Client) UpdateEnvelopeGroup(ctx context.Context, id uuid.UUID, patch EnvelopeGroupPatch) (EnvelopeGroup, error) {
	var envelope response[EnvelopeGroup]
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/v1/envelope-groups/%s", id), nil, patch, &envelope)
	if err != nil {
		return EnvelopeGroup{}, err
	}

	return envelope.Data, nil
}

// DeleteEnvelopeGroup deletes the envelope group. Envelopes of the group are
// kept and become ungrouped.
func (c *Client) DeleteEnvelopeGroup(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/envelope-groups/%s", id), nil, nil, nil)
}

// GetEnvelopeSummary returns the headline figures of the budget.
func (c *Client) GetEnvelopeSummary(ctx context.Context, budgetID uuid.UUID) (EnvelopeSummary, error) {
	var envelope response[EnvelopeSummary]
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/budgets/%s/summary", budgetID), nil, nil, &envelope)
	if err != nil {
		return EnvelopeSummary{}, err
	}

	return envelope.Data, nil
}

// GetBudgetSummary returns the budget aggregated over the window [from, until].
func (c *Client) GetBudgetSummary(ctx context.Context, budgetID uuid.UUID, from, until types.Date) (BudgetSummary, error) {
	query := url.Values{}
	query.Set("from", from.String())
	query.Set("until", until.String())

	var envelope response[BudgetSummary]
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/budgets/%s/budget-summary", budgetID), query, nil, &envelope)
	if err != nil {
		return BudgetSummary{}, err
	}

	return envelope.Data, nil
}

// GetEnvelopeActivity returns the line-itemized activity of the envelope
// within the window [from, until], newest first.
func (c *Client) GetEnvelopeActivity(ctx context.Context, budgetID, envelopeID uuid.UUID, from, until types.Date) ([]ActivityLine, error) {
	query := url.Values{}
	query.Set("from", from.String())
	query.Set("until", until.String())

	var envelope response[[]ActivityLine]
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/budgets/%s/envelopes/%s/activity", budgetID, envelopeID), query, nil, &envelope)
	if err != nil {
		return nil, err
	}

	return envelope.Data, nil
}

// TransferBetweenEnvelopes moves money between two envelopes of the budget
// and returns the two allocations that were written.
func (c *Client) TransferBetweenEnvelopes(ctx context.Context, budgetID uuid.UUID, transfer Transfer) ([]Allocation, error) {
	var envelope response[[]Allocation]
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/v1/budgets/%s/transfers", budgetID), nil, transfer, &envelope)
	if err != nil {
		return nil, err
	}

	return envelope.Data, nil
}

// errorMessage extracts the error string from an error response. Batch
// create endpoints report per-element errors, everything else uses the
// top level error field.
func errorMessage(raw []byte) string {
	var envelope response[json.RawMessage]
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != nil {
		return *envelope.Error
	}

	var batch createResponse[json.RawMessage]
	if err := json.Unmarshal(raw, &batch); err == nil {
		for _, element := range batch.Data {
			if element.Error != nil {
				return *element.Error
			}
		}
	}

	return ""
}

// firstCreated unwraps the first element of a batch create response.
func firstCreated[T any](envelope createResponse[T]) (T, error) {
	var zero T

	if len(envelope.Data) == 0 {
		return zero, fmt.Errorf("the API did not return the created resource")
	}

	element := envelope.Data[0]
	if element.Error != nil {
		return zero, fmt.Errorf("creating the resource failed: %s", *element.Error)
	}
	if element.Data == nil {
		return zero, fmt.Errorf("the API did not return the created resource")
	}

	return *element.Data, nil
}
