// Package client implements the SQL client: it routes statements to the
// backend by kind and renders the JSON result into an output surface.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"jeongsql/internal/model"
	"jeongsql/internal/query"
)

// DefaultBaseURL is the backend address used when none is configured.
const DefaultBaseURL = "http://localhost:8080"

const (
	sqlPath  = "/sql"
	seedPath = "/insert-dummy"
)

// Config holds the client settings.
type Config struct {
	// BaseURL is the backend address, without a trailing slash.
	BaseURL string
	// SeedMode selects how the seed action enumerates its rows.
	SeedMode SeedMode
	// SeedStatements overrides the statements sent in SeedClient mode.
	SeedStatements []string
	// HTTPClient defaults to a client with no timeout.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client dispatches statements to the backend. It is safe for concurrent
// use; concurrent calls race on the output and the last one to finish wins.
type Client struct {
	baseURL        string
	seedMode       SeedMode
	seedStatements []string
	httpClient     *http.Client
	out            Renderer
	logger         *slog.Logger
}

// New creates a client that renders into out.
func New(cfg Config, out Renderer) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		seedMode:       cfg.SeedMode,
		seedStatements: cfg.SeedStatements,
		httpClient:     cfg.HTTPClient,
		out:            out,
		logger:         cfg.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.seedStatements == nil {
		c.seedStatements = model.DummyPatientInserts
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.out == nil {
		c.out = RendererFunc(func(string) {})
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// Submit sends rawQuery to the backend and renders the outcome. The rendered
// text is also returned.
func (c *Client) Submit(ctx context.Context, rawQuery string) string {
	text, err := c.submit(ctx, rawQuery)
	switch {
	case errors.Is(err, ErrInvalidQuery):
		c.logger.DebugContext(ctx, "query rejected", "query", rawQuery)
		text = MessageFor(err)
	case err != nil:
		c.logger.WarnContext(ctx, "query failed", "error", err)
		text = MessageFor(err)
	}
	c.out.Render(text)
	return text
}

func (c *Client) submit(ctx context.Context, rawQuery string) (string, error) {
	v, err := c.Dispatch(ctx, rawQuery)
	if err != nil {
		return "", err
	}
	text, err := Pretty(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrQueryExecution, err)
	}
	return text, nil
}

// Dispatch classifies rawQuery, issues the matching request and returns the
// validated response body. Invalid statements fail with ErrInvalidQuery without
// touching the network; everything else that goes wrong wraps
// ErrQueryExecution.
func (c *Client) Dispatch(ctx context.Context, rawQuery string) (json.RawMessage, error) {
	q := query.Normalize(rawQuery)
	kind := query.Classify(q)

	var (
		req *http.Request
		err error
	)
	switch kind {
	case query.Read:
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+sqlPath+"/"+query.EncodeComponent(q), nil)
	case query.Write:
		req, err = c.newJSONRequest(ctx, sqlPath, model.QueryRequest{Query: q})
	default:
		return nil, ErrInvalidQuery
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrQueryExecution, err)
	}

	c.logger.DebugContext(ctx, "dispatching query", "kind", kind.String(), "method", req.Method, "url", req.URL.String())

	v, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryExecution, err)
	}
	return v, nil
}

func (c *Client) newJSONRequest(ctx context.Context, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do sends req and decodes the body. The status code is not
// inspected: any JSON the backend returns is shown as-is.
func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(req.Context(), "response received", "status", resp.StatusCode)
	return decodeJSON(resp.Body)
}
