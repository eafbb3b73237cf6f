package attio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.attio.com"
	DefaultTimeout = 10 * time.Second
)

// Record is a company record as returned by the records endpoint.
type Record struct {
	ID     RecordID `json:"id"`
	Values Values   `json:"values"`
}

// RecordID is the composite identifier Attio attaches to a record.
type RecordID struct {
	WorkspaceID string `json:"workspace_id"`
	ObjectID    string `json:"object_id"`
	RecordID    string `json:"record_id"`
}

// Entry is a list entry; ParentRecordID points at the company it tracks.
type Entry struct {
	ID             EntryID `json:"id"`
	ParentRecordID string  `json:"parent_record_id"`
	ParentObject   string  `json:"parent_object"`
	EntryValues    Values  `json:"entry_values"`
}

// EntryID is the composite identifier Attio attaches to a list entry.
type EntryID struct {
	WorkspaceID string `json:"workspace_id"`
	ListID      string `json:"list_id"`
	EntryID     string `json:"entry_id"`
}

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("attio API error: status %d: %s", e.StatusCode, e.Body)
}

// Client reads records and list entries from the Attio REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at another API host, such as a test server.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout bounds every request made by the client.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying http.Client. Apply it before
// WithTimeout if both are used.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient returns a client authenticating with the given bearer token.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchCompany loads a company record by id.
func (c *Client) FetchCompany(ctx context.Context, recordID string) (*Record, error) {
	var resp struct {
		Data Record `json:"data"`
	}
	if err := c.get(ctx, "/v2/objects/companies/records/"+url.PathEscape(recordID), &resp); err != nil {
		return nil, fmt.Errorf("fetch company %s: %w", recordID, err)
	}
	return &resp.Data, nil
}

// FetchEntry loads a fast track list entry by id.
func (c *Client) FetchEntry(ctx context.Context, entryID string) (*Entry, error) {
	var resp struct {
		Data Entry `json:"data"`
	}
	if err := c.get(ctx, "/v2/lists/fast_tracks/entries/"+url.PathEscape(entryID), &resp); err != nil {
		return nil, fmt.Errorf("fetch entry %s: %w", entryID, err)
	}
	return &resp.Data, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
