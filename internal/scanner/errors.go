package scanner

import "errors"

// ErrBoundaryNotFound is returned when the end of input is reached before an
// unquoted '>' at brace depth zero. Callers skip the occurrence and leave the
// text untouched.
var ErrBoundaryNotFound = errors.New("tag boundary not found")
