// Package health verifies that the object storage backend is usable.
//
// The check lists buckets (the same liveness check the server runs at startup)
// and then confirms the configured default bucket exists.
//
// # HTTP Endpoints
//
//   - GET /health : 200 with a Report when healthy, 503 otherwise.
//
// The same Service backs the "health" CLI command.
package health
