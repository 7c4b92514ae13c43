package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Repository operation names, used in OpError and Event.
const (
	OpUpload       = "upload"
	OpImport       = "import"
	OpDelete       = "delete"
	OpExists       = "exists"
	OpBucketExists = "bucket_exists"
	OpList         = "list"
	OpListBuckets  = "list_buckets"
)

// Bucket is a top-level container as reported by the storage service.
type Bucket struct {
	Name         string    `json:"name"`
	CreationDate time.Time `json:"creation_date"`
}

// Item is an object entry as reported by a listing.
type Item struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	ETag         string    `json:"etag"`
	ContentType  string    `json:"content_type,omitempty"`
}

// Event describes a mutating operation once it has finished.
type Event struct {
	Op          string
	Bucket      string
	Path        string
	Size        int64
	ContentType string
	Err         error
}

// Recorder receives an Event for every upload and delete.
type Recorder interface {
	Record(ctx context.Context, event Event) error
}

// Repository maps object operations in a single bucket onto the storage client.
// Instances are cheap and meant to be created per request scope; the client is shared.
type Repository struct {
	client     Client
	bucket     string
	endpoint   string
	logger     *zap.Logger
	recorder   Recorder
	httpClient *http.Client
}

// RepositoryOption customises a Repository.
type RepositoryOption func(*Repository)

// WithLogger sets the logger used for failure reporting.
func WithLogger(l *zap.Logger) RepositoryOption {
	return func(r *Repository) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRecorder attaches a Recorder for mutating operations.
func WithRecorder(rec Recorder) RepositoryOption {
	return func(r *Repository) {
		r.recorder = rec
	}
}

// WithHTTPClient sets the client used to fetch remote sources in UploadFromURI.
func WithHTTPClient(c *http.Client) RepositoryOption {
	return func(r *Repository) {
		if c != nil {
			r.httpClient = c
		}
	}
}

// NewRepository creates a repository bound to bucket. endpoint is only used by FullPath.
func NewRepository(client Client, endpoint, bucket string, opts ...RepositoryOption) *Repository {
	r := &Repository{
		client:     client,
		bucket:     bucket,
		endpoint:   endpoint,
		logger:     zap.NewNop(),
		httpClient: NewSourceHTTPClient(Config{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Bucket returns the bucket the repository operates on.
func (r *Repository) Bucket() string {
	return r.bucket
}

// FullPath returns "{endpoint}/{bucket}/{path}". It performs no I/O.
func (r *Repository) FullPath(path string) string {
	return fmt.Sprintf("%s/%s/%s", r.endpoint, r.bucket, path)
}

// UploadFile uploads a multipart form file to path.
func (r *Repository) UploadFile(ctx context.Context, file *multipart.FileHeader, path string) error {
	contentType := file.Header.Get("Content-Type")

	f, err := file.Open()
	if err != nil {
		return r.finish(ctx, OpUpload, path, file.Size, contentType, fmt.Errorf("failed to open form file: %w", err))
	}
	defer f.Close()

	return r.put(ctx, OpUpload, f, path, file.Size, contentType)
}

// Upload streams reader to path. A size of -1 lets the SDK upload in parts until EOF.
func (r *Repository) Upload(ctx context.Context, reader io.Reader, path string, size int64, contentType string) error {
	return r.put(ctx, OpUpload, reader, path, size, contentType)
}

// UploadFromURI streams the body of an HTTP GET on uri into path without buffering it.
// The response must carry both Content-Length and Content-Type.
func (r *Repository) UploadFromURI(ctx context.Context, uri, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return r.finish(ctx, OpImport, path, 0, "", fmt.Errorf("invalid source uri: %w", err))
	}
	// Keep the transport from negotiating gzip, which would hide the length.
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return r.finish(ctx, OpImport, path, 0, "", fmt.Errorf("failed to fetch source: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return r.finish(ctx, OpImport, path, 0, "", fmt.Errorf("source responded with status %d", resp.StatusCode))
	}

	contentType := resp.Header.Get("Content-Type")
	if resp.ContentLength < 0 {
		return r.finish(ctx, OpImport, path, 0, contentType, fmt.Errorf("%w: no content-length", ErrMissingMetadata))
	}
	if contentType == "" {
		return r.finish(ctx, OpImport, path, resp.ContentLength, "", fmt.Errorf("%w: no content-type", ErrMissingMetadata))
	}

	return r.put(ctx, OpImport, resp.Body, path, resp.ContentLength, contentType)
}

func (r *Repository) put(ctx context.Context, op string, reader io.Reader, path string, size int64, contentType string) error {
	_, err := r.client.PutObject(ctx, r.bucket, path, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return r.finish(ctx, op, path, size, contentType, err)
}

// Delete removes the object at path. It returns an error wrapping ErrNotFound
// when nothing is stored there.
func (r *Repository) Delete(ctx context.Context, path string) error {
	if _, err := r.client.StatObject(ctx, r.bucket, path, minio.StatObjectOptions{}); err != nil {
		if IsNotFound(err) {
			err = ErrNotFound
		}
		return r.finish(ctx, OpDelete, path, 0, "", err)
	}

	err := r.client.RemoveObject(ctx, r.bucket, path, minio.RemoveObjectOptions{})
	return r.finish(ctx, OpDelete, path, 0, "", err)
}

// Exists reports whether an object is stored at path.
// A missing object yields false with a nil error.
func (r *Repository) Exists(ctx context.Context, path string) (bool, error) {
	_, err := r.client.StatObject(ctx, r.bucket, path, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if IsNotFound(err) {
		return false, nil
	}
	return false, r.fail(OpExists, path, err)
}

// BucketExists reports whether the named bucket exists.
func (r *Repository) BucketExists(ctx context.Context, bucket string) (bool, error) {
	exists, err := r.client.BucketExists(ctx, bucket)
	if err != nil {
		r.logger.Warn("Storage operation failed",
			zap.String("op", OpBucketExists), zap.String("bucket", bucket), zap.Error(err))
		return false, &OpError{Op: OpBucketExists, Bucket: bucket, Err: err}
	}
	return exists, nil
}

// List returns every object whose key starts with prefix, in the order the backend returns them.
func (r *Repository) List(ctx context.Context, prefix string) ([]Item, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	items := []Item{}
	for obj := range r.client.ListObjects(ctx, r.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, r.fail(OpList, prefix, obj.Err)
		}
		items = append(items, Item{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
			ETag:         strings.Trim(obj.ETag, `"`),
			ContentType:  obj.ContentType,
		})
	}
	return items, nil
}

// ListBuckets returns every bucket visible to the client.
func (r *Repository) ListBuckets(ctx context.Context) ([]Bucket, error) {
	infos, err := r.client.ListBuckets(ctx)
	if err != nil {
		return nil, r.fail(OpListBuckets, "", err)
	}

	buckets := make([]Bucket, 0, len(infos))
	for _, info := range infos {
		buckets = append(buckets, Bucket{Name: info.Name, CreationDate: info.CreationDate})
	}
	return buckets, nil
}

func (r *Repository) fail(op, path string, err error) error {
	r.logger.Warn("Storage operation failed",
		zap.String("op", op),
		zap.String("bucket", r.bucket),
		zap.String("path", path),
		zap.Error(err))
	return &OpError{Op: op, Bucket: r.bucket, Path: path, Err: err}
}

// finish reports a mutating operation to the recorder and wraps err.
func (r *Repository) finish(ctx context.Context, op, path string, size int64, contentType string, err error) error {
	if r.recorder != nil {
		event := Event{Op: op, Bucket: r.bucket, Path: path, Size: size, ContentType: contentType, Err: err}
		if recErr := r.recorder.Record(context.WithoutCancel(ctx), event); recErr != nil {
			r.logger.Error("Failed to record transfer", zap.String("op", op), zap.String("path", path), zap.Error(recErr))
		}
	}
	if err != nil {
		return r.fail(op, path, err)
	}
	r.logger.Debug("Storage operation completed", zap.String("op", op), zap.String("path", path), zap.Int64("size", size))
	return nil
}
