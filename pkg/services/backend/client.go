package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantamisecode-hub/groona-insights/pkg/adapters"
	"github.com/quantamisecode-hub/groona-insights/pkg/models/api"
	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
)

// Client talks to the groonabackend REST API. It owns no state beyond
// the connection; every method fetches fresh collections.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

type Config struct {
	BaseURL string        `mapstructure:"base_url" validate:"required"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var records []api.Project
	if err := c.get(ctx, "/projects", nil, &records); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	out := make([]domain.Project, 0, len(records))
	for _, rec := range records {
		out = append(out, adapters.MapProjectAPIToDomain(rec))
	}
	return out, nil
}

func (c *Client) ListTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	q := url.Values{}
	if projectID != "" {
		q.Set("project_id", projectID)
	}
	var records []api.Task
	if err := c.get(ctx, "/tasks", q, &records); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	out := make([]domain.Task, 0, len(records))
	for _, rec := range records {
		out = append(out, adapters.MapTaskAPIToDomain(rec))
	}
	return out, nil
}

func (c *Client) ListTimeEntries(ctx context.Context, from, to time.Time) ([]domain.TimeEntry, error) {
	q := url.Values{}
	if !from.IsZero() {
		q.Set("from", from.Format("2006-01-02"))
	}
	if !to.IsZero() {
		q.Set("to", to.Format("2006-01-02"))
	}
	var records []api.TimeEntry
	if err := c.get(ctx, "/timesheets", q, &records); err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	out := make([]domain.TimeEntry, 0, len(records))
	for _, rec := range records {
		out = append(out, adapters.MapTimeEntryAPIToDomain(rec))
	}
	return out, nil
}

func (c *Client) ListExpenses(ctx context.Context, projectID string) ([]domain.Expense, error) {
	q := url.Values{}
	if projectID != "" {
		q.Set("project_id", projectID)
	}
	var records []api.Expense
	if err := c.get(ctx, "/expenses", q, &records); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	out := make([]domain.Expense, 0, len(records))
	for _, rec := range records {
		out = append(out, adapters.MapExpenseAPIToDomain(rec))
	}
	return out, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var records []api.User
	if err := c.get(ctx, "/users", nil, &records); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	out := make([]domain.User, 0, len(records))
	for _, rec := range records {
		out = append(out, adapters.MapUserAPIToDomain(rec))
	}
	return out, nil
}

// GetRate implements currency.RateSource against the backend's
// conversion endpoint.
func (c *Client) GetRate(ctx context.Context, from, to string) (float64, error) {
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	q.Set("amount", "1")
	var resp api.ConversionResponse
	if err := c.get(ctx, "/currency/convert", q, &resp); err != nil {
		return 0, fmt.Errorf("failed to fetch rate %s->%s: %w", from, to, err)
	}
	return resp.Rate, nil
}

// GenerateInsights asks the backend's LLM endpoint for a narrative
// report. Failures degrade to an empty answer with a logged warning —
// an insight panel with nothing in it, never a failed page.
func (c *Client) GenerateInsights(ctx context.Context, question string, contextData map[string]any) (string, error) {
	body := api.InsightRequest{Question: question, ContextData: contextData}
	var resp api.InsightResponse
	if err := c.post(ctx, "/insights/generate", body, &resp); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("insight generation failed, returning no insights")
		return "", nil
	}
	return resp.Content, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Path)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
