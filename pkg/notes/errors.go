package notes

import (
	"fmt"
	"net/http"
)

// HTTPError is implemented by domain errors that map to a specific HTTP
// status code, so the transport layer can translate them without enumerating
// error types. Errors that do not implement it (store failures) surface as
// generic server errors.
type HTTPError interface {
	error
	StatusCode() int
}

// InvalidIDError reports a client-supplied identifier that failed to parse.
// It is raised before any store access.
type InvalidIDError struct {
	Raw string
	Err error
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid id %q", e.Raw)
}

func (e *InvalidIDError) Unwrap() error { return e.Err }

func (e *InvalidIDError) StatusCode() int { return http.StatusBadRequest }

// NotFoundError reports that a referenced or targeted entity does not exist.
// The entity kind only distinguishes the message, not the status code.
type NotFoundError struct {
	Kind string
}

func (e *NotFoundError) Error() string {
	return e.Kind + " not found"
}

func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }

// ValidationError reports input that failed entity field rules.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }
