package server

import "fmt"

// BindError reports that the listener could not be opened, e.g. the port is
// already in use or binding it needs privileges the process lacks.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("failed to bind %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}
