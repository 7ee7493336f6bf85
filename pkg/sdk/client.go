package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mythopedia-cloud/mythopedia"
)

const defaultTimeout = 30 * time.Second

// Client talks to a mythopedia API server over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for the given base URL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// APIError is a non-2xx reply from the server.
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mythopedia api: %d %s: %s", e.Status, e.Code, e.Message)
}

// SearchOptions narrows and orders a search call.
type SearchOptions struct {
	Filters mythopedia.Filters
	Sort    string
	Limit   int
}

// Search runs a full-text search.
func (c *Client) Search(ctx context.Context, query string, opts *SearchOptions) (mythopedia.Response, error) {
	params := url.Values{"q": {query}}
	if opts != nil {
		if opts.Sort != "" {
			params.Set("sort", opts.Sort)
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
		for _, v := range opts.Filters.Mythologies {
			params.Add("mythology", v)
		}
		for _, v := range opts.Filters.ContentTypes {
			params.Add("type", v)
		}
		for _, v := range opts.Filters.Domains {
			params.Add("domain", v)
		}
		for _, v := range opts.Filters.Tags {
			params.Add("tag", v)
		}
	}

	var resp mythopedia.Response
	if err := c.get(ctx, "/search", params, &resp); err != nil {
		return mythopedia.Response{}, err
	}
	return resp, nil
}

// Autocomplete returns completions for a prefix.
func (c *Client) Autocomplete(ctx context.Context, prefix string, limit int) ([]string, error) {
	params := url.Values{"q": {prefix}}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var body struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := c.get(ctx, "/search/autocomplete", params, &body); err != nil {
		return nil, err
	}
	return body.Suggestions, nil
}

// Suggestions proposes spelling corrections for a query.
func (c *Client) Suggestions(ctx context.Context, query string) ([]mythopedia.Suggestion, error) {
	var body struct {
		Suggestions []mythopedia.Suggestion `json:"suggestions"`
	}
	if err := c.get(ctx, "/search/suggestions", url.Values{"q": {query}}, &body); err != nil {
		return nil, err
	}
	return body.Suggestions, nil
}

// Facets returns the distinct filterable values in the server's index.
func (c *Client) Facets(ctx context.Context) (mythopedia.Facets, error) {
	var facets mythopedia.Facets
	if err := c.get(ctx, "/search/facets", nil, &facets); err != nil {
		return mythopedia.Facets{}, err
	}
	return facets, nil
}

// PopularQuery pairs a query with its popularity counter.
type PopularQuery struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// Popular returns the most frequent queries.
func (c *Client) Popular(ctx context.Context, limit int) ([]PopularQuery, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var body struct {
		Queries []PopularQuery `json:"queries"`
	}
	if err := c.get(ctx, "/search/popular", params, &body); err != nil {
		return nil, err
	}
	return body.Queries, nil
}

// Content fetches one indexed record by id.
func (c *Client) Content(ctx context.Context, id string) (mythopedia.Record, error) {
	var rec mythopedia.Record
	if err := c.get(ctx, "/content/"+url.PathEscape(id), nil, &rec); err != nil {
		return mythopedia.Record{}, err
	}
	return rec, nil
}

// Reindex asks the server to rebuild its search index.
func (c *Client) Reindex(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/admin/reindex", nil, nil)
}

// HealthReport is the server's health reply.
type HealthReport struct {
	Status       string            `json:"status"`
	Checks       map[string]string `json:"checks"`
	IndexEntries int               `json:"indexEntries"`
}

// Health checks the server.
func (c *Client) Health(ctx context.Context) (HealthReport, error) {
	var report HealthReport
	if err := c.get(ctx, "/health", nil, &report); err != nil {
		return HealthReport{}, err
	}
	return report, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, params, out)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
