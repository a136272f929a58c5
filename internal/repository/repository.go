// Package repository holds the report store backends and the errors they
// share.
package repository

import "errors"

// ErrNotFound is returned when a report id does not exist in the store.
var ErrNotFound = errors.New("report not found")
