// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver error strings.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts a mutation on a
// resource owned by someone else. Handlers translate it into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned when an insert collides with the unique
// email key on the users table.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrStoreNotFound is returned when a store lookup matches no row.
var ErrStoreNotFound = errors.New("store not found")
