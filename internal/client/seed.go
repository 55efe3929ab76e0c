package client

import (
	"context"
	"fmt"
	"strings"

	"jeongsql/internal/messages"
	"jeongsql/internal/model"
)

// SeedMode selects who enumerates the seed rows.
type SeedMode int

const (
	// SeedClient sends each fixed INSERT statement as its own request.
	SeedClient SeedMode = iota
	// SeedServer sends one request without a body and lets the backend
	// insert its own fixed rows.
	SeedServer
)

func (m SeedMode) String() string {
	if m == SeedServer {
		return "server"
	}
	return "client"
}

// ParseSeedMode accepts "client", "server" or an empty string (client).
func ParseSeedMode(s string) (SeedMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "client":
		return SeedClient, nil
	case "server":
		return SeedServer, nil
	default:
		return SeedClient, fmt.Errorf("unknown seed mode %q", s)
	}
}

// Seed inserts the fixed dataset and renders either the success message or
// the network error message. Partial progress is never reported.
func (c *Client) Seed(ctx context.Context) string {
	return c.renderSeed(ctx, c.seed(ctx))
}

func (c *Client) seed(ctx context.Context) error {
	if c.seedMode == SeedServer {
		if err := c.post(ctx, nil); err != nil {
			return fmt.Errorf("%w: %w", ErrNetwork, err)
		}
		return nil
	}

	for i, stmt := range c.seedStatements {
		if err := c.post(ctx, model.QueryRequest{Query: stmt}); err != nil {
			return fmt.Errorf("%w: statement %d: %w", ErrNetwork, i+1, err)
		}
	}
	return nil
}

func (c *Client) post(ctx context.Context, body any) error {
	req, err := c.newJSONRequest(ctx, seedPath, body)
	if err != nil {
		return err
	}
	c.logger.DebugContext(ctx, "seeding", "url", req.URL.String())
	_, err = c.do(req)
	return err
}

func (c *Client) renderSeed(ctx context.Context, err error) string {
	text := messages.InsertSuccess
	if err != nil {
		c.logger.WarnContext(ctx, "seed failed", "error", err)
		text = MessageFor(err)
	}
	c.out.Render(text)
	return text
}
