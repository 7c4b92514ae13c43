// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting every route except the docs.
//   - rayid: a unique Request ID (RayID) per request, stored in the locals, the
//     user context and the X-Ray-ID response header.
//   - scope: one storage.Repository per request, sharing the single client of
//     the storage registration. Handlers fetch it with scope.Repository.
//
// Order matters: rayid first, then request logging, auth and scope.
package middleware
