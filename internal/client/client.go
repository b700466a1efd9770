// Package client talks to a remote coachgen server over its REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/claude/coachgen/internal/generator"
	"github.com/claude/coachgen/internal/ingest"
	"github.com/claude/coachgen/internal/models"
	"github.com/claude/coachgen/internal/program"
	"github.com/claude/coachgen/internal/storage"
)

// maxAttempts bounds retries of idempotent POSTs on transport errors and 5xx.
const maxAttempts = 3

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("client: %s returned %d: %s", e.Path, e.Status, e.Body)
}

// Client calls the coachgen REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	backoff    time.Duration
}

// New creates a Client targeting baseURL. The API key is only sent on routes
// that require it: program writes and catalog uploads.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		backoff:    time.Second,
	}
}

// do sends one request, retrying it when retry is set. Only requests whose
// repetition cannot create a second resource may set retry.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body []byte, header http.Header, retry bool) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	attempts := 1
	if retry {
		attempts = maxAttempts
	}

	var lastErr error
	for attempt := range attempts {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff * time.Duration(1<<uint(attempt-1))):
			}
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, reader)
		if err != nil {
			return nil, fmt.Errorf("client: create request: %w", err)
		}
		for k, v := range header {
			req.Header[k] = v
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("client: %s: %w", path, err)
			continue
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("client: read body: %w", err)
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return data, nil
		}
		lastErr = &StatusError{Path: path, Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
		if resp.StatusCode < 500 {
			return nil, lastErr
		}
	}
	if attempts > 1 {
		return nil, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
	}
	return nil, lastErr
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, v any) error {
	data, err := c.do(ctx, http.MethodGet, path, params, nil, nil, false)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("client: decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any, auth, retry bool) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("client: encode %s: %w", path, err)
	}
	header := http.Header{"Content-Type": {"application/json"}}
	if auth {
		header.Set("X-API-Key", c.apiKey)
	}
	data, err := c.do(ctx, http.MethodPost, path, nil, body, header, retry)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("client: decode %s: %w", path, err)
	}
	return nil
}

// Preview generates a program on the server without storing it.
func (c *Client) Preview(ctx context.Context, req generator.Request) (models.Program, error) {
	var p models.Program
	err := c.postJSON(ctx, "/api/v1/programs/preview", req, &p, false, true)
	return p, err
}

// Create generates and stores a program on the server. The server assigns the
// ID, so a failed attempt is never repeated.
func (c *Client) Create(ctx context.Context, req program.CreateRequest) (*storage.ProgramRecord, error) {
	var rec storage.ProgramRecord
	if err := c.postJSON(ctx, "/api/v1/programs", req, &rec, true, false); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Get fetches a stored program. A 404 maps to storage.ErrNotFound.
func (c *Client) Get(ctx context.Context, id uuid.UUID) (*storage.ProgramRecord, error) {
	var rec storage.ProgramRecord
	if err := c.getJSON(ctx, "/api/v1/programs/"+id.String(), nil, &rec); err != nil {
		return nil, notFound(err)
	}
	return &rec, nil
}

// List returns the most recent programs.
func (c *Client) List(ctx context.Context, limit int) ([]storage.ProgramSummary, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var out []storage.ProgramSummary
	if err := c.getJSON(ctx, "/api/v1/programs", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Regenerate draws new sessions for a stored program.
func (c *Client) Regenerate(ctx context.Context, id uuid.UUID) (*storage.ProgramRecord, error) {
	var rec storage.ProgramRecord
	if err := c.postJSON(ctx, "/api/v1/programs/"+id.String()+"/regenerate", struct{}{}, &rec, true, true); err != nil {
		return nil, notFound(err)
	}
	return &rec, nil
}

// CatalogStats returns per-partition catalog counts.
func (c *Client) CatalogStats(ctx context.Context) ([]storage.PartitionStats, error) {
	var out []storage.PartitionStats
	if err := c.getJSON(ctx, "/api/v1/catalog/stats", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadPartition replaces a catalog partition on the server.
func (c *Client) UploadPartition(ctx context.Context, partition string, records []models.RawExercise) (*ingest.Result, error) {
	var result ingest.Result
	if err := c.postJSON(ctx, "/api/v1/catalog/"+url.PathEscape(partition), records, &result, true, true); err != nil {
		return nil, err
	}
	return &result, nil
}

func notFound(err error) error {
	var se *StatusError
	if errors.As(err, &se) && se.Status == http.StatusNotFound {
		return fmt.Errorf("%s: %w", se.Body, storage.ErrNotFound)
	}
	return err
}
