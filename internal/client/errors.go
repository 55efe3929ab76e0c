package client

import (
	"errors"

	"jeongsql/internal/messages"
)

var (
	// ErrInvalidQuery is returned before any I/O for statements that are
	// neither SELECT nor INSERT.
	ErrInvalidQuery = errors.New("client: only SELECT and INSERT statements are allowed")

	// ErrQueryExecution wraps any failure while sending a query or decoding
	// its response.
	ErrQueryExecution = errors.New("client: query execution failed")

	// ErrNetwork wraps any failure of the seed action.
	ErrNetwork = errors.New("client: seeding failed")
)

// MessageFor maps an error returned by the client to the fixed text shown to
// the user. Unknown errors are reported as query execution errors.
func MessageFor(err error) string {
	switch {
	case errors.Is(err, ErrInvalidQuery):
		return messages.InvalidQuery
	case errors.Is(err, ErrNetwork):
		return messages.NetworkError
	default:
		return messages.QueryError
	}
}
