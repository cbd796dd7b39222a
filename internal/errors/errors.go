package errors

import "errors"

// This package defines a centralized set of sentinel errors for the application.
// Using sentinel errors allows services to return specific, recognizable error types
// without coupling them to implementation details like HTTP status codes. The API
// layer checks for them with `errors.Is()` and maps them to the correct responses.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// Mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client failed
	// validation. Mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrGateway signifies a failure while calling the external model
	// provider: transport, authentication, or a provider-side error. The
	// client only ever sees a generic message; the wrapped detail is logged.
	// Mapped to a 500 Internal Server Error HTTP status.
	ErrGateway = errors.New("model gateway failure")

	// ErrInternal signifies an unexpected error on the server. This is a
	// generic error used to prevent leaking implementation details.
	// Mapped to a 500 Internal Server Error HTTP status.
	ErrInternal = errors.New("internal server error")
)
