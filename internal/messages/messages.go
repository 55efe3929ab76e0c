// Package messages holds the user-facing strings shown by the SQL client.
package messages

// Sentinel messages rendered in place of a result.
const (
	InsertSuccess = "Data inserted successfully!"
	QueryError    = "Error executing query"
	NetworkError  = "Network error occurred"
	InvalidQuery  = "Only SELECT and INSERT queries are allowed"
)

// Labels for the client surfaces.
const (
	PageTitle         = "Jeong SQL Client"
	TextAreaLabel     = "Enter SQL Query"
	SubmitButtonLabel = "Submit"
	InsertButtonLabel = "Seed Data (Insert)"
)
