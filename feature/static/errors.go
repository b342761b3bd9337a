package static

import "errors"

var (
	// ErrNotFound means the requested path does not exist under the root.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the path escapes the root or may not be read.
	ErrForbidden = errors.New("forbidden")
	// ErrBadRequest means the request path could not be decoded.
	ErrBadRequest = errors.New("bad request")
)
