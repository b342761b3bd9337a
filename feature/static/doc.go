// Package static implements the static file responder.
//
// A request path is decoded, checked for parent-directory segments and mapped
// onto a Source, a read-only view of the site root. Two sources exist:
//
//   - Local: a directory on disk, accessed through afero with a base-path
//     jail and a symlink containment check.
//   - Bucket: objects under a key prefix of an S3/MinIO bucket.
//
// # Responses
//
//   - 200 with Content-Type and Content-Length for regular files; HEAD gets
//     the same headers and no body.
//   - 301 to the slash-terminated URL for a directory requested without one.
//   - The index file (index.html by default) for a directory, else an HTML
//     listing if enabled, else 404.
//   - 400 for undecodable paths, 403 for traversal or unreadable files,
//     404 for missing ones, 501 for methods other than GET and HEAD.
package static
