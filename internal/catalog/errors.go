package catalog

import "errors"

// Failure conditions surfaced by the client. Callers match them with errors.Is.
var (
	// ErrValidation means the input was rejected locally; no request was made.
	ErrValidation = errors.New("invalid catalog input")
	// ErrNotFound means the catalog answered with a non-success status, or with
	// a body that is not the requested record.
	ErrNotFound = errors.New("catalog record not found")
	// ErrTransport means the request never produced a usable answer.
	ErrTransport = errors.New("catalog transport failure")
)
