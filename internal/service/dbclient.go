package service

import "context"

// DBClient is the database the backend runs statements against.
type DBClient interface {
	Connect(dsn string) error
	Disconnect() error
	EnsureSchema(ctx context.Context) error
	RunQuery(ctx context.Context, query string) ([]string, [][]any, error)
	Exec(ctx context.Context, query string) (int64, error)
}
