// Package storage provides a thin repository over an S3-compatible object store.
//
// It wraps the MinIO Go client. The protocol work (signing, multipart uploads,
// retries on the wire) stays inside the SDK; this package only maps repository
// calls onto SDK calls and turns SDK failures into typed errors.
//
// # Registration
//
// Register builds exactly one Client for a Config. An optional Builder may
// rewrite the Config first. Ping performs the startup liveness check (a bucket
// listing) and fails with ErrInitialize when the endpoint or credentials are
// unusable. Repository hands out a new Repository per request scope, all
// sharing the registration's client.
//
// # Repository
//
//   - UploadFile, Upload, UploadFromURI: store content at a path.
//   - Delete: remove an object; absent objects yield ErrNotFound.
//   - Exists: false with a nil error when the object is absent.
//   - BucketExists, ListBuckets, List: metadata lookups.
//   - FullPath: "{endpoint}/{bucket}/{path}" without I/O.
//
// Every failure is an *OpError; use errors.Is with ErrNotFound or
// ErrMissingMetadata to classify it.
//
// # Usage
//
//	reg, err := storage.Register(cfg.Storage)
//	if err := reg.Ping(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	repo := reg.Repository()
//	err = repo.Upload(ctx, r, "a.txt", 10, "text/plain")
package storage
