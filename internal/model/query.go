package model

// QueryRequest is the body of every write-style request.
type QueryRequest struct {
	Query string `json:"query"`
}

// ExecResponse is returned by the backend for statements that produce no rows.
type ExecResponse struct {
	Message      string `json:"message"`
	RowsAffected int64  `json:"rows_affected"`
}
