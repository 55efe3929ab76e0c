package service

import (
	"context"
	"database/sql"
	"errors"

	"jeongsql/internal/model"

	_ "github.com/lib/pq"
)

var errNotConnected = errors.New("not connected to any database")

type PostgresClient struct {
	db *sql.DB
}

func NewPostgresClient() *PostgresClient {
	return &PostgresClient{}
}

// NewPostgresClientWithDB wraps an already opened handle.
func NewPostgresClientWithDB(db *sql.DB) *PostgresClient {
	return &PostgresClient{db: db}
}

func (p *PostgresClient) Connect(dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	p.db = db
	return db.Ping()
}

func (p *PostgresClient) Disconnect() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

// EnsureSchema creates the patient table used by the seed rows.
func (p *PostgresClient) EnsureSchema(ctx context.Context) error {
	if p.db == nil {
		return errNotConnected
	}
	_, err := p.db.ExecContext(ctx, model.PatientTableDDL)
	return err
}

// RunQuery returns the column names and every row's values in select-list
// order. Byte slices are returned as strings so they serialize as text rather
// than base64.
func (p *PostgresClient) RunQuery(ctx context.Context, query string) ([]string, [][]any, error) {
	if p.db == nil {
		return nil, nil, errNotConnected
	}
	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	results := [][]any{}
	for rows.Next() {
		columns := make([]any, len(cols))
		columnPointers := make([]any, len(cols))

		for i := range columns {
			columnPointers[i] = &columns[i]
		}

		if err := rows.Scan(columnPointers...); err != nil {
			return nil, nil, err
		}

		for i, val := range columns {
			if b, ok := val.([]byte); ok {
				columns[i] = string(b)
			}
		}

		results = append(results, columns)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return cols, results, nil
}

// Exec runs a statement that returns no rows and reports the affected count.
func (p *PostgresClient) Exec(ctx context.Context, query string) (int64, error) {
	if p.db == nil {
		return 0, errNotConnected
	}
	res, err := p.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
