// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the
// static file responder.
//
// # Components
//
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
//   - AccessLog: Logs one structured line per request (method, path, status,
//     duration) tagged with the RayID.
//
// RayID must be registered before AccessLog so the access line carries the id.
package middleware
