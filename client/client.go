// Package client is a typed wrapper over the REST API. Every failure, whether
// it happens before sending, in transport, or in the response, comes back as *Error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nemopss/financas/backend/models"
)

// Error is the uniform failure returned by every Client method.
// Status is zero when no HTTP response was received.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sends token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New returns a client for the API rooted at baseURL, e.g. http://localhost:3001/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, &Error{Message: fmt.Sprintf("encode request: %v", err)}
		}
		reader = bytes.NewReader(raw)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, &Error{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Error == "" {
			apiErr.Error = "Unknown error"
		}
		return resp.StatusCode, &Error{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, &Error{Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
		}
	}
	return resp.StatusCode, nil
}

func invalid(err error) *Error {
	return &Error{Message: err.Error()}
}

func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	// Health lives beside /api, not under it.
	root := strings.TrimSuffix(c.baseURL, "/api")
	var out models.HealthResponse
	hc := &Client{baseURL: root, http: c.http, token: c.token}
	if _, err := hc.do(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if _, err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Category(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var out models.Category
	if _, err := c.do(ctx, http.MethodGet, "/categories/"+id.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}
	var out models.Category
	if _, err := c.do(ctx, http.MethodPost, "/categories", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	_, err := c.do(ctx, http.MethodDelete, "/categories/"+id.String(), nil, nil, nil)
	return err
}

func (c *Client) Transactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	query := url.Values{}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Type != "" {
		query.Set("type", string(filter.Type))
	}
	if filter.CategoryID != nil {
		query.Set("category_id", filter.CategoryID.String())
	}

	var out []models.Transaction
	if _, err := c.do(ctx, http.MethodGet, "/transactions", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Transaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var out models.Transaction
	if _, err := c.do(ctx, http.MethodGet, "/transactions/"+id.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTransaction validates in locally; an invalid amount or missing expense
// category fails without issuing a request.
func (c *Client) CreateTransaction(ctx context.Context, in models.TransactionInput) (*models.Transaction, error) {
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}
	var out models.Transaction
	if _, err := c.do(ctx, http.MethodPost, "/transactions", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, id uuid.UUID, in models.TransactionInput) (*models.Transaction, error) {
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}
	if in.Date == nil {
		return nil, invalid(models.ErrDateRequired)
	}
	var out models.Transaction
	if _, err := c.do(ctx, http.MethodPut, "/transactions/"+id.String(), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	_, err := c.do(ctx, http.MethodDelete, "/transactions/"+id.String(), nil, nil, nil)
	return err
}

func (c *Client) Budgets(ctx context.Context, filter models.BudgetFilter) ([]models.Budget, error) {
	query := url.Values{}
	if filter.Month > 0 {
		query.Set("month", strconv.Itoa(filter.Month))
	}
	if filter.Year > 0 {
		query.Set("year", strconv.Itoa(filter.Year))
	}

	var out []models.Budget
	if _, err := c.do(ctx, http.MethodGet, "/budgets", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetBudget creates the budget or overwrites the amount of an existing one;
// created reports which happened.
func (c *Client) SetBudget(ctx context.Context, in models.BudgetInput) (budget *models.Budget, created bool, err error) {
	if err := in.Validate(); err != nil {
		return nil, false, invalid(err)
	}
	var out models.Budget
	status, err := c.do(ctx, http.MethodPost, "/budgets", nil, in, &out)
	if err != nil {
		return nil, false, err
	}
	return &out, status == http.StatusCreated, nil
}

func (c *Client) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	_, err := c.do(ctx, http.MethodDelete, "/budgets/"+id.String(), nil, nil, nil)
	return err
}

// DashboardStats fetches the monthly summary. Zero month or year lets the server pick the current one.
func (c *Client) DashboardStats(ctx context.Context, month, year int) (*models.DashboardStats, error) {
	query := url.Values{}
	if month > 0 {
		query.Set("month", strconv.Itoa(month))
	}
	if year > 0 {
		query.Set("year", strconv.Itoa(year))
	}

	var out models.DashboardStats
	if _, err := c.do(ctx, http.MethodGet, "/dashboard/stats", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
