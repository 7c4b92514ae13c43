// Package transfers serves the transfer log recorded by the storage repository.
//
// It is only enabled when the optional database is connected.
//
//   - GET /transfers?limit= : newest transfers first.
package transfers
