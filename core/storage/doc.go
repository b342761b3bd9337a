// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the small read-only interface needed to
// serve a site out of a bucket. Both AWS S3 and self-hosted MinIO work.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider so bucket
// reads can be mocked in unit tests (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - StatObject: Fetches size and modification time of one object.
//   - GetObject: Retrieves content as a stream.
//   - ListObjects: Lists objects under a prefix.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "site")
package storage
