package static

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"go.uber.org/zap"
)

// Kind tells the handler how to answer a resolved request.
type Kind int

const (
	// KindFile streams a regular file.
	KindFile Kind = iota
	// KindListing renders a directory listing.
	KindListing
	// KindRedirect sends the client to the slash-terminated directory URL.
	KindRedirect
)

// Resolved is the outcome of mapping a request path onto the source.
type Resolved struct {
	Kind Kind
	// Path is the decoded request path.
	Path string
	// Name is the source name of the file to stream.
	Name  string
	Entry Entry
	// Location is the escaped redirect target for KindRedirect.
	Location string
	// Entries holds the directory contents for KindListing.
	Entries []Entry
}

// Service maps request paths onto a Source.
type Service struct {
	source  Source
	index   string
	listing bool
	logger  *zap.Logger
}

// NewService creates a new static file service.
func NewService(source Source, cfg Config, logger *zap.Logger) *Service {
	index := cfg.Index
	if index == "" {
		index = "index.html"
	}
	return &Service{
		source:  source,
		index:   index,
		listing: cfg.Listing,
		logger:  logger,
	}
}

// Resolve maps the raw (still escaped) request path onto the source.
func (s *Service) Resolve(ctx context.Context, rawPath string) (*Resolved, error) {
	decoded, name, err := CleanPath(rawPath)
	if err != nil {
		return nil, err
	}

	entry, err := s.source.Stat(ctx, name)
	if err != nil {
		return nil, err
	}

	if !entry.IsDir {
		if name != "" && strings.HasSuffix(decoded, "/") {
			return nil, fmt.Errorf("%s is a file: %w", name, ErrNotFound)
		}
		return &Resolved{Kind: KindFile, Path: decoded, Name: name, Entry: entry}, nil
	}

	if !strings.HasSuffix(decoded, "/") {
		loc := (&url.URL{Path: "/" + name + "/"}).EscapedPath()
		return &Resolved{Kind: KindRedirect, Path: decoded, Name: name, Location: loc}, nil
	}

	indexName := path.Join(name, s.index)
	idx, err := s.source.Stat(ctx, indexName)
	switch {
	case err == nil && !idx.IsDir:
		return &Resolved{Kind: KindFile, Path: decoded, Name: indexName, Entry: idx}, nil
	case err != nil && !errors.Is(err, ErrNotFound):
		return nil, err
	}

	if !s.listing {
		return nil, fmt.Errorf("%s has no %s: %w", decoded, s.index, ErrNotFound)
	}

	entries, err := s.source.List(ctx, name)
	if err != nil {
		return nil, err
	}
	return &Resolved{Kind: KindListing, Path: decoded, Name: name, Entry: entry, Entries: entries}, nil
}

// Open streams the named file from the source.
func (s *Service) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.source.Open(ctx, name)
}

// CleanPath decodes a raw request path and returns it together with the
// source name it refers to. Any ".." segment is refused with ErrForbidden,
// before cleaning, so traversal attempts never reach the source.
func CleanPath(rawPath string) (decoded, name string, err error) {
	decoded, err = url.PathUnescape(rawPath)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if strings.ContainsRune(decoded, 0) {
		return "", "", fmt.Errorf("%w: NUL byte in path", ErrBadRequest)
	}
	if !strings.HasPrefix(decoded, "/") {
		decoded = "/" + decoded
	}

	segments := strings.FieldsFunc(decoded, func(r rune) bool { return r == '/' || r == '\\' })
	for _, seg := range segments {
		if seg == ".." {
			return "", "", fmt.Errorf("%q contains a parent segment: %w", decoded, ErrForbidden)
		}
	}

	name = strings.TrimPrefix(path.Clean(decoded), "/")
	return decoded, name, nil
}
