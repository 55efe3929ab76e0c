// Package query classifies raw SQL text by statement prefix and encodes it
// for transport.
package query

import (
	"net/url"
	"strings"
)

// Kind is the transport a statement is routed to.
type Kind int

const (
	Invalid Kind = iota
	Read
	Write
)

func (k Kind) String() string {
	switch k {
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return "invalid"
	}
}

// Normalize trims leading and trailing whitespace.
func Normalize(raw string) string {
	return strings.TrimSpace(raw)
}

// Classify reports whether text is a read (SELECT), a write (INSERT) or
// neither. The check is a case-insensitive prefix match on the trimmed text.
func Classify(text string) Kind {
	upper := strings.ToUpper(Normalize(text))
	switch {
	case strings.HasPrefix(upper, "SELECT"):
		return Read
	case strings.HasPrefix(upper, "INSERT"):
		return Write
	default:
		return Invalid
	}
}

// EncodeComponent percent-encodes every byte outside the unreserved set
// (A-Z a-z 0-9 - _ . ~), so the result is safe as a single path segment and
// decodes back with either url.PathUnescape or url.QueryUnescape.
func EncodeComponent(s string) string {
	// QueryEscape leaves only unreserved bytes and turns space into '+';
	// a literal '+' is already %2B so the swap is unambiguous.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
