package storage

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Registration owns the single client built for a configuration and
// hands out repositories that share it.
type Registration struct {
	cfg        Config
	client     Client
	logger     *zap.Logger
	recorder   Recorder
	httpClient *http.Client
}

// Option customises Register.
type Option func(*registerOptions)

type registerOptions struct {
	builder    Builder
	factory    ClientFactory
	logger     *zap.Logger
	recorder   Recorder
	httpClient *http.Client
}

// WithBuilder transforms the configuration before the client is built.
func WithBuilder(b Builder) Option {
	return func(o *registerOptions) { o.builder = b }
}

// WithClientFactory replaces NewClient, mainly for tests.
func WithClientFactory(f ClientFactory) Option {
	return func(o *registerOptions) { o.factory = f }
}

// WithRegistrationLogger sets the base logger for repositories.
func WithRegistrationLogger(l *zap.Logger) Option {
	return func(o *registerOptions) { o.logger = l }
}

// WithTransferRecorder attaches a Recorder to every repository.
func WithTransferRecorder(r Recorder) Option {
	return func(o *registerOptions) { o.recorder = r }
}

// WithSourceHTTPClient sets the client repositories use for UploadFromURI.
// Without it, NewSourceHTTPClient is used with the effective configuration.
func WithSourceHTTPClient(c *http.Client) Option {
	return func(o *registerOptions) { o.httpClient = c }
}

// Register builds exactly one storage client from cfg.
// It does not contact the backend; call Ping for that.
func Register(cfg Config, opts ...Option) (*Registration, error) {
	o := registerOptions{
		factory: NewClient,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.builder != nil {
		cfg = o.builder(cfg)
	}

	client, err := o.factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialize, err)
	}

	if o.httpClient == nil {
		o.httpClient = NewSourceHTTPClient(cfg)
	}

	return &Registration{
		cfg:        cfg,
		client:     client,
		logger:     o.logger,
		recorder:   o.recorder,
		httpClient: o.httpClient,
	}, nil
}

// Config returns the effective configuration after the builder ran.
func (r *Registration) Config() Config {
	return r.cfg
}

// Client returns the shared storage client.
func (r *Registration) Client() Client {
	return r.client
}

// Ping lists buckets to verify the endpoint and credentials.
func (r *Registration) Ping(ctx context.Context) error {
	if _, err := r.client.ListBuckets(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrInitialize, err)
	}
	return nil
}

// Repository returns a new repository over the shared client, bound to the default bucket.
func (r *Registration) Repository(opts ...RepositoryOption) *Repository {
	base := []RepositoryOption{
		WithLogger(r.logger),
		WithRecorder(r.recorder),
		WithHTTPClient(r.httpClient),
	}
	return NewRepository(r.client, r.cfg.Host(), r.cfg.Bucket, append(base, opts...)...)
}
