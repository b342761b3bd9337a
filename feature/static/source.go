package static

import (
	"context"
	"io"
	"time"
)

// Entry describes a file or directory under the root.
type Entry struct {
	Name    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// Source is a read-only view of the served root.
//
// Names are clean, slash separated and relative to the root; "" is the root
// itself. Implementations report missing paths with ErrNotFound and refused
// ones with ErrForbidden, wrapped if they add context.
type Source interface {
	Stat(ctx context.Context, name string) (Entry, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	List(ctx context.Context, name string) ([]Entry, error)
}
