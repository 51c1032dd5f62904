// Package repository defines error types that are reused across multiple
// repositories.  Sentinel values let handlers distinguish failure
// scenarios: a missing guest becomes a 404, a full table becomes a 409.
package repository

import "errors"

// ErrTableFull is returned when an assignment would exceed a table's
// maximum capacity.  Handlers translate this into an HTTP 409 so the
// client rolls back its optimistic update.
var ErrTableFull = errors.New("table is full")
