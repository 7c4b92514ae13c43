package health

import (
	"context"
	"time"

	"bucket-manager/core/storage"

	"go.uber.org/zap"
)

// Report is the outcome of a storage health check.
type Report struct {
	Status       string `json:"status"`
	Endpoint     string `json:"endpoint"`
	Bucket       string `json:"bucket"`
	Reachable    bool   `json:"reachable"`
	BucketExists bool   `json:"bucket_exists"`
	Error        string `json:"error,omitempty"`
	Duration     string `json:"duration"`
}

// Healthy reports whether the endpoint answered and the default bucket exists.
func (r Report) Healthy() bool {
	return r.Reachable && r.BucketExists
}

// Service runs health checks against the storage registration.
type Service struct {
	reg    *storage.Registration
	logger *zap.Logger
}

// NewService creates a new health service.
func NewService(reg *storage.Registration, logger *zap.Logger) *Service {
	return &Service{reg: reg, logger: logger}
}

// Check pings the backend and verifies the default bucket.
func (s *Service) Check(ctx context.Context) (report Report) {
	start := time.Now()
	cfg := s.reg.Config()
	report = Report{Status: "unhealthy", Endpoint: cfg.Host(), Bucket: cfg.Bucket}

	defer func() {
		report.Duration = time.Since(start).String()
	}()

	if err := s.reg.Ping(ctx); err != nil {
		s.logger.Warn("Storage ping failed", zap.Error(err))
		report.Error = err.Error()
		return report
	}
	report.Reachable = true

	exists, err := s.reg.Repository(storage.WithLogger(s.logger)).BucketExists(ctx, cfg.Bucket)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.BucketExists = exists
	if !exists {
		report.Error = "bucket " + cfg.Bucket + " does not exist"
		return report
	}

	report.Status = "ok"
	return report
}
