// ABOUTME: Common storage errors
// ABOUTME: Enables consistent error handling across storage callers

package storage

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateUser is returned when a username is already taken.
var ErrDuplicateUser = errors.New("username already exists")
