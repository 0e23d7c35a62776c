// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates an internal failure whose cause has already been logged.
var ErrInternal = errors.New("internal")
