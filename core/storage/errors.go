package storage

import (
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
)

var (
	// ErrInitialize is returned when the storage backend fails its startup check.
	ErrInitialize = errors.New("storage initialization failed")
	// ErrNotFound is returned when an object does not exist.
	ErrNotFound = errors.New("object not found")
	// ErrMissingMetadata is returned when a remote source omits Content-Length or Content-Type.
	ErrMissingMetadata = errors.New("remote resource is missing content metadata")
)

// OpError records a failed repository operation and its cause.
type OpError struct {
	Op     string
	Bucket string
	Path   string
	Err    error
}

func (e *OpError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("storage %s %s: %v", e.Op, e.Bucket, e.Err)
	}
	return fmt.Sprintf("storage %s %s/%s: %v", e.Op, e.Bucket, e.Path, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means the object is absent.
// A missing bucket is not treated as a missing object.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotFound) {
		return true
	}
	return string(minio.ToErrorResponse(err).Code) == "NoSuchKey"
}
