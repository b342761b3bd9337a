// Package integrity checks that the configured site can be served.
//
// # Checks Provided
//
//   - Root: the local directory or bucket prefix exists and is a directory.
//   - Index: the configured index file (index.html by default) is present at
//     the root, so "/" does not answer 404.
//
// The checks run against the same static.Source the server uses, so a bucket
// site is checked through MinIO exactly as it would be served.
//
// # CLI
//
//	devserve check
//
// prints the report as JSON and exits non-zero when the site is unhealthy.
package integrity
