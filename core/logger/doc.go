// Package logger provides a structured logging facility based on Zap.
//
// New builds a development logger for the debug level and a production logger
// otherwise, with json or console encoding.
//
// WithRayID attaches the request's RayID (set by the rayid middleware) so every
// log line of a request, including the ones emitted by its storage repository,
// can be correlated.
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	l := logger.WithRayID(log, c)
//	l.Error("Upload failed", zap.Error(err))
package logger
