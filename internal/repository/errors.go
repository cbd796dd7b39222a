package repository

import "errors"

// ErrNotFound is a repository-specific sentinel error. It is returned when a
// lookup for a single entity finds nothing, and by message operations whose
// conversation does not exist.
//
// The service layer checks for this error and translates it into a
// domain-level error (app_errors.ErrNotFound), decoupling business logic
// from the storage implementation.
var ErrNotFound = errors.New("repository: not found")
