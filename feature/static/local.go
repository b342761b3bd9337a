package static

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/afero"
)

// Local serves a directory tree through afero, jailed to the root and
// read-only.
type Local struct {
	fs afero.Fs
	// root is the symlink-resolved OS path, empty for non-OS filesystems.
	root string
}

// NewLocal opens root on the OS filesystem. Symlinks under root are
// followed only while they stay inside it.
func NewLocal(root string) (*Local, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %q: %w", root, err)
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("root %s: %w", abs, mapFsError(err))
	}
	info, err := os.Stat(real)
	if err != nil {
		return nil, fmt.Errorf("root %s: %w", real, mapFsError(err))
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", real)
	}

	base := afero.NewBasePathFs(afero.NewOsFs(), real)
	return &Local{fs: afero.NewReadOnlyFs(base), root: real}, nil
}

// NewLocalFs serves an arbitrary afero filesystem, typically a MemMapFs in tests.
func NewLocalFs(fsys afero.Fs) *Local {
	return &Local{fs: afero.NewReadOnlyFs(fsys)}
}

// Root returns the resolved root directory, or "" when not OS backed.
func (l *Local) Root() string {
	return l.root
}

func (l *Local) Stat(_ context.Context, name string) (Entry, error) {
	if err := l.contain(name); err != nil {
		return Entry{}, err
	}
	info, err := l.fs.Stat(l.path(name))
	if err != nil {
		return Entry{}, fmt.Errorf("stat %q: %w", name, mapFsError(err))
	}
	return entryFromInfo(info), nil
}

func (l *Local) Open(_ context.Context, name string) (io.ReadCloser, error) {
	if err := l.contain(name); err != nil {
		return nil, err
	}
	f, err := l.fs.Open(l.path(name))
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", name, mapFsError(err))
	}
	return f, nil
}

func (l *Local) List(_ context.Context, name string) ([]Entry, error) {
	if err := l.contain(name); err != nil {
		return nil, err
	}
	infos, err := afero.ReadDir(l.fs, l.path(name))
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", name, mapFsError(err))
	}
	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, entryFromInfo(info))
	}
	return entries, nil
}

func (l *Local) path(name string) string {
	return "/" + name
}

// contain rejects names whose symlink-resolved target leaves the root.
func (l *Local) contain(name string) error {
	if l.root == "" {
		return nil
	}
	real, err := filepath.EvalSymlinks(filepath.Join(l.root, filepath.FromSlash(name)))
	if err != nil {
		return fmt.Errorf("resolve %q: %w", name, mapFsError(err))
	}
	rel, err := filepath.Rel(l.root, real)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%q resolves outside the root: %w", name, ErrForbidden)
	}
	return nil
}

func entryFromInfo(info fs.FileInfo) Entry {
	e := Entry{
		Name:    info.Name(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}
	if !e.IsDir {
		e.Size = info.Size()
	}
	return e
}

func mapFsError(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrForbidden
	default:
		return err
	}
}
