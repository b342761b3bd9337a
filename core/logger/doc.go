// Package logger provides a structured logging facility based on Zap.
//
// The console encoding (the default) is meant for an operator watching the
// terminal; json is for shipping logs elsewhere.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID set by the rayid middleware from a
// Fiber context and attaches it to the log entry, so every line logged while
// serving one request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Warn("File stream aborted", zap.Error(err))
package logger
