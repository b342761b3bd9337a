package static

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"sort"
	"strings"

	"devserve/core/storage"

	"github.com/minio/minio-go/v7"
)

// Bucket serves objects stored under a key prefix of an S3/MinIO bucket.
// Directories are implied by key prefixes.
type Bucket struct {
	client storage.Client
	bucket string
	prefix string
}

// NewBucket creates a bucket source. prefix may be empty to serve the whole bucket.
func NewBucket(client storage.Client, bucket, prefix string) *Bucket {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &Bucket{client: client, bucket: bucket, prefix: prefix}
}

func (b *Bucket) Stat(ctx context.Context, name string) (Entry, error) {
	if name == "" {
		exists, err := b.client.BucketExists(ctx, b.bucket)
		if err != nil {
			return Entry{}, fmt.Errorf("failed to check bucket %s: %w", b.bucket, mapStorageError(err))
		}
		if !exists {
			return Entry{}, fmt.Errorf("bucket %s does not exist: %w", b.bucket, ErrNotFound)
		}
		return Entry{IsDir: true}, nil
	}

	info, err := b.client.StatObject(ctx, b.bucket, b.key(name), minio.StatObjectOptions{})
	if err == nil {
		return Entry{Name: path.Base(name), Size: info.Size, ModTime: info.LastModified}, nil
	}
	if mapped := mapStorageError(err); mapped != ErrNotFound {
		return Entry{}, fmt.Errorf("stat %q: %w", name, mapped)
	}

	// No object with that key; it is a directory if anything lives below it.
	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	opts := minio.ListObjectsOptions{Prefix: b.key(name) + "/", MaxKeys: 1}
	for obj := range b.client.ListObjects(listCtx, b.bucket, opts) {
		if obj.Err != nil {
			return Entry{}, fmt.Errorf("stat %q: %w", name, mapStorageError(obj.Err))
		}
		return Entry{Name: path.Base(name), IsDir: true}, nil
	}
	return Entry{}, fmt.Errorf("stat %q: %w", name, ErrNotFound)
}

func (b *Bucket) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, b.key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", name, mapStorageError(err))
	}
	return obj, nil
}

func (b *Bucket) List(ctx context.Context, name string) ([]Entry, error) {
	prefix := b.key(name)
	if name != "" {
		prefix += "/"
	}

	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var entries []Entry
	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: false}
	for obj := range b.client.ListObjects(listCtx, b.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list %q: %w", name, mapStorageError(obj.Err))
		}
		rel := strings.TrimPrefix(obj.Key, prefix)
		if rel == "" {
			// Folder marker object for the directory itself.
			continue
		}
		if strings.HasSuffix(rel, "/") {
			entries = append(entries, Entry{Name: strings.TrimSuffix(rel, "/"), IsDir: true})
			continue
		}
		entries = append(entries, Entry{Name: rel, Size: obj.Size, ModTime: obj.LastModified})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (b *Bucket) key(name string) string {
	return b.prefix + name
}

func mapStorageError(err error) error {
	resp := minio.ToErrorResponse(err)
	switch {
	case resp.Code == "NoSuchKey", resp.Code == "NoSuchBucket", resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.Code == "AccessDenied", resp.StatusCode == http.StatusForbidden:
		return ErrForbidden
	default:
		return err
	}
}
