// Package terminal runs the SQL client as an interactive line-oriented shell.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"jeongsql/internal/client"
	"jeongsql/internal/messages"

	"github.com/chzyer/readline"
)

// Prompt is shown before every line.
const Prompt = "jsql> "

// LineReader yields one line of input per call and io.EOF when input ends.
// *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
}

// Session reads statements from a LineReader and submits them through a
// client bound to the terminal.
type Session struct {
	in     LineReader
	out    io.Writer
	submit trigger
	seed   trigger
	line   string
}

type trigger struct{ fn func() }

func (t *trigger) OnActivate(fn func()) { t.fn = fn }

func (t *trigger) fire() {
	if t.fn != nil {
		t.fn()
	}
}

// Value returns the line currently being submitted.
func (s *Session) Value() string { return s.line }

// NewSession binds a client to the terminal. Results are written to out.
func NewSession(ctx context.Context, cfg client.Config, in LineReader, out io.Writer) *Session {
	s := &Session{in: in, out: out}
	client.Bind(ctx, cfg, client.Surfaces{
		Input:  s,
		Output: client.NewWriterRenderer(out),
		Submit: &s.submit,
		Seed:   &s.seed,
	})
	return s
}

// Run processes lines until EOF, .quit or ctx is done. Each line is one
// statement.
func (s *Session) Run(ctx context.Context) error {
	s.banner()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.in.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := s.command(line); quit {
				return nil
			}
			continue
		}

		s.line = line
		s.submit.fire()
	}
}

func (s *Session) command(line string) bool {
	switch strings.ToLower(strings.Fields(line)[0]) {
	case ".quit", ".exit":
		return true
	case ".seed":
		s.seed.fire()
	case ".help":
		s.help()
	default:
		_, _ = fmt.Fprintf(s.out, "Unknown command %s. Type .help for commands.\n", line)
	}
	return false
}

func (s *Session) banner() {
	_, _ = fmt.Fprintln(s.out, messages.PageTitle)
	_, _ = fmt.Fprintf(s.out, "%s, or .help for commands\n\n", messages.TextAreaLabel)
}

func (s *Session) help() {
	_, _ = fmt.Fprintln(s.out, "Commands:")
	_, _ = fmt.Fprintf(s.out, "  <sql>   %s (SELECT or INSERT)\n", messages.SubmitButtonLabel)
	_, _ = fmt.Fprintf(s.out, "  .seed   %s\n", messages.InsertButtonLabel)
	_, _ = fmt.Fprintln(s.out, "  .help   Show this help")
	_, _ = fmt.Fprintln(s.out, "  .quit   Exit")
}
