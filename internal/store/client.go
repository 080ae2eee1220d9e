// Package store provides the remote document client for the shared task
// bin. The bin is one opaque JSON document behind a keyed blob endpoint:
// the only operations are a whole-document GET and a whole-document PUT.
// There are no partial updates, so every mutation upstream is a full
// read-modify-write of the collection.
//
// The client is a transport, not a schema enforcer: it parses the response
// envelope and the task array but performs no field validation, and it
// never retries. Retry policy belongs to the caller.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hpratama/taskbin/internal/errors"
	"github.com/hpratama/taskbin/internal/logging"
	"github.com/hpratama/taskbin/internal/task"
)

// defaultTimeout bounds each whole-document request.
const defaultTimeout = 15 * time.Second

// Client performs whole-document reads and overwrites against one bin.
type Client struct {
	baseURL    string
	binID      string
	accessKey  string
	httpClient *http.Client
	log        *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. Used by tests to point
// the client at an httptest server.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *logging.Logger) Option {
	return func(c *Client) {
		c.log = log.WithComponent("store")
	}
}

// NewClient creates a client for the bin identified by binID under baseURL.
// The access key is the store-level API credential sent as a request header
// on every call.
func NewClient(baseURL, binID, accessKey string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("store: base URL must not be empty")
	}
	if binID == "" {
		return nil, fmt.Errorf("store: bin ID must not be empty")
	}

	c := &Client{
		baseURL:   baseURL,
		binID:     binID,
		accessKey: accessKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		log: logging.NopLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// binEnvelope is the fetch response wrapper. The store returns the actual
// document under the "record" field.
type binEnvelope struct {
	Record json.RawMessage `json:"record"`
}

// binURL returns the document endpoint for this client's bin.
func (c *Client) binURL() string {
	return fmt.Sprintf("%s/%s", c.baseURL, c.binID)
}

// Fetch retrieves the entire bin document and parses it as a task
// collection. A missing bin or an empty/null record is an empty collection,
// not an error. All other failures surface as a StoreError carrying the
// underlying cause.
func (c *Client) Fetch(ctx context.Context) ([]task.Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.binURL(), nil)
	if err != nil {
		return nil, errors.NewStoreError("fetch bin", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewStoreError("fetch bin", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewStoreError("fetch bin", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		c.log.Debug("bin not found, treating as empty collection")
		return []task.Task{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewStoreError("fetch bin",
			fmt.Errorf("unexpected response: %s", bodySummary(body))).
			WithStatusCode(resp.StatusCode)
	}

	var envelope binEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.NewStoreError("fetch bin", fmt.Errorf("decode envelope: %w", err))
	}

	if len(envelope.Record) == 0 || string(envelope.Record) == "null" {
		return []task.Task{}, nil
	}

	var tasks []task.Task
	if err := json.Unmarshal(envelope.Record, &tasks); err != nil {
		return nil, errors.NewStoreError("fetch bin", fmt.Errorf("decode record: %w", err))
	}

	c.log.Debug("fetched bin", "tasks", len(tasks))
	return tasks, nil
}

// Overwrite replaces the entire bin document with the given collection in a
// single whole-document PUT. The store treats the write as atomic; there is
// no partial-field update.
func (c *Client) Overwrite(ctx context.Context, tasks []task.Task) error {
	// The document is the bare array, mirroring what Fetch reads back from
	// the envelope's record field.
	payload, err := json.Marshal(tasks)
	if err != nil {
		return errors.NewStoreError("overwrite bin", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.binURL(), bytes.NewReader(payload))
	if err != nil {
		return errors.NewStoreError("overwrite bin", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewStoreError("overwrite bin", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewStoreError("overwrite bin", err)
	}

	if resp.StatusCode != http.StatusOK {
		return errors.NewStoreError("overwrite bin",
			fmt.Errorf("unexpected response: %s", bodySummary(body))).
			WithStatusCode(resp.StatusCode)
	}

	c.log.Debug("overwrote bin", "tasks", len(tasks))
	return nil
}

// setHeaders attaches the store credential and content type.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.accessKey != "" {
		req.Header.Set("X-Access-Key", c.accessKey)
	}
}

// bodySummary truncates a response body for error messages.
func bodySummary(body []byte) string {
	const maxLen = 200
	s := string(bytes.TrimSpace(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "(empty body)"
	}
	return s
}
