package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Renderer replaces the content of a single output surface.
type Renderer interface {
	Render(text string)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(text string)

func (f RendererFunc) Render(text string) { f(text) }

// Pane is an in-memory output surface. The last Render wins.
type Pane struct {
	mu   sync.Mutex
	text string
}

func (p *Pane) Render(text string) {
	p.mu.Lock()
	p.text = text
	p.mu.Unlock()
}

// Text returns the currently displayed text.
func (p *Pane) Text() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.text
}

// WriterRenderer renders into a scrollback stream such as a terminal. Each
// Render appends one block to w, and the most recent block is the current
// content of the output surface; earlier blocks are history, not state.
// Rendering the same text again repeats the block and leaves the current
// content unchanged.
type WriterRenderer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterRenderer(w io.Writer) *WriterRenderer {
	return &WriterRenderer{w: w}
}

func (r *WriterRenderer) Render(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, _ = io.WriteString(r.w, text)
}

// Pretty indents a JSON document with two spaces. Key order, number text and
// HTML characters are kept exactly as the backend sent them.
func Pretty(raw json.RawMessage) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", fmt.Errorf("failed to format response: %w", err)
	}
	return buf.String(), nil
}

// decodeJSON reads exactly one JSON value from r and returns its raw bytes.
func decodeJSON(r io.Reader) (json.RawMessage, error) {
	dec := json.NewDecoder(r)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("failed to decode response: unexpected data after JSON value")
	}
	return raw, nil
}
