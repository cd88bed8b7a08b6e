package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/exp/slog"

	"zervitravel/internal/sanitize"
)

// Client talks to the remote table service. It is a narrow adapter: one
// protocol call per method, errors translated into the package taxonomy,
// no sanitization and no local fallback.
type Client struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string
}

func New(baseURL string, log *slog.Logger) *Client {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &Client{
		client:    client,
		log:       log,
		baseURL:   baseURL,
		userAgent: "ZerviTravel-Client/1.0",
	}
}

// HealthCheck verifies the service answers at all.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}

// Table returns a handle bound to one named remote collection.
func (c *Client) Table(name string) *Table {
	return &Table{c: c, name: name}
}

// Table issues ordered CRUD calls against one remote table.
type Table struct {
	c    *Client
	name string
}

func (t *Table) Name() string {
	return t.name
}

// List returns the table's records newest-first.
func (t *Table) List(ctx context.Context) ([]json.RawMessage, error) {
	resp, err := t.c.do(ctx, http.MethodGet, t.path(""), nil, 0)
	if err != nil {
		return nil, err
	}

	var records []json.RawMessage
	if err := t.c.parse(resp, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Insert sends a sanitized payload and waits for the single created row.
func (t *Table) Insert(ctx context.Context, fields sanitize.Fields) (json.RawMessage, error) {
	resp, err := t.c.do(ctx, http.MethodPost, t.path(""), fields, 0)
	if err != nil {
		return nil, err
	}

	var created json.RawMessage
	if err := t.c.parse(resp, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update targets exactly one row by id. baseVersion rides the If-Match
// header; a stale base yields ErrConflict.
func (t *Table) Update(ctx context.Context, id string, baseVersion int, fields sanitize.Fields) (json.RawMessage, error) {
	resp, err := t.c.do(ctx, http.MethodPatch, t.path(id), fields, baseVersion)
	if err != nil {
		return nil, err
	}

	var updated json.RawMessage
	if err := t.c.parse(resp, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove deletes one row by id. Removing an absent row is not an error.
func (t *Table) Remove(ctx context.Context, id string) error {
	resp, err := t.c.do(ctx, http.MethodDelete, t.path(id), nil, 0)
	if err != nil {
		return err
	}
	return t.c.parse(resp, nil)
}

func (t *Table) path(id string) string {
	p := "/api/v1/tables/" + t.name
	if id != "" {
		p += "/" + id
	}
	return p
}

func (c *Client) do(ctx context.Context, method, path string, body any, baseVersion int) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if baseVersion > 0 {
		req.Header.Set("If-Match", strconv.Itoa(baseVersion))
	}

	c.log.Debug("remote request", "method", method, "url", req.URL.String())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

func (c *Client) parse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("remote response", "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		switch resp.StatusCode {
		case http.StatusNotFound:
			return ErrNotFound
		case http.StatusConflict, http.StatusPreconditionFailed:
			return ErrConflict
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
		}

		var errResp struct {
			Error  string `json:"error"`
			Detail string `json:"detail"`
		}
		reason := ""
		if err := json.Unmarshal(body, &errResp); err == nil {
			reason = errResp.Error
			if reason == "" {
				reason = errResp.Detail
			}
		}
		return &APIError{Status: resp.StatusCode, Reason: reason}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}
