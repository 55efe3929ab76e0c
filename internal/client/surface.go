package client

import (
	"context"

	"jeongsql/internal/messages"
)

// Input is the surface the query text is read from.
type Input interface {
	Value() string
}

// Trigger is an action surface, such as a button, that runs fn when it is
// activated.
type Trigger interface {
	OnActivate(fn func())
}

// Labeler is implemented by surfaces that display a caption.
type Labeler interface {
	SetLabel(label string)
}

// Surfaces are the handles a client is bound to.
type Surfaces struct {
	Title  Labeler
	Input  Input
	Output Renderer
	Submit Trigger
	Seed   Trigger
}

// Bind creates a client rendering into s.Output and wires the submit and seed
// triggers to it. Surfaces that accept a label get theirs from the message
// table. Callbacks run with ctx.
func Bind(ctx context.Context, cfg Config, s Surfaces) *Client {
	c := New(cfg, s.Output)

	setLabel(s.Title, messages.PageTitle)
	setLabel(s.Input, messages.TextAreaLabel)
	setLabel(s.Submit, messages.SubmitButtonLabel)
	setLabel(s.Seed, messages.InsertButtonLabel)

	if s.Submit != nil {
		s.Submit.OnActivate(func() {
			var raw string
			if s.Input != nil {
				raw = s.Input.Value()
			}
			c.Submit(ctx, raw)
		})
	}
	if s.Seed != nil {
		s.Seed.OnActivate(func() { c.Seed(ctx) })
	}
	return c
}

func setLabel(surface any, label string) {
	if l, ok := surface.(Labeler); ok && l != nil {
		l.SetLabel(label)
	}
}
