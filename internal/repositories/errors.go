package repositories

import "errors"

// ErrNotFound reports a missing record. Callers match with errors.Is.
var ErrNotFound = errors.New("record not found")
