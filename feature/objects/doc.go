// Package objects exposes the storage repository over HTTP.
//
// Every handler works on the request-scoped repository installed by the
// scope middleware, so all requests share one storage client.
//
// # HTTP Endpoints
//
//   - GET /buckets : Lists buckets.
//   - GET /buckets/:name : Reports whether a bucket exists.
//   - GET /objects?prefix= : Lists objects under a prefix.
//   - GET /objects/* : Reports whether an object exists (404 when absent).
//   - POST /objects/* : Uploads the multipart "file" field.
//   - PUT /objects/* : Uploads the raw request body.
//   - DELETE /objects/* : Deletes an object (404 when absent).
//   - POST /imports : Streams a remote URI into an object.
//
// Errors wrapping storage.ErrNotFound map to 404, storage.ErrMissingMetadata
// to 422 and everything else to 500.
package objects
