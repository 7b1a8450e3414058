// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists indicates a name collision with an existing entity.
var ErrAlreadyExists = errors.New("already exists")

// ErrValidation indicates the input failed validation. Wrap with
// fmt.Errorf("%w: reason", domain.ErrValidation) so handlers can surface
// the reason to the caller.
var ErrValidation = errors.New("validation failed")

// ErrUnauthenticated indicates a sync operation was attempted without
// stored credentials.
var ErrUnauthenticated = errors.New("not authenticated")

// ErrRemote indicates a non-success response from the remote document store.
var ErrRemote = errors.New("remote store error")
