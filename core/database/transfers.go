package database

import (
	"context"
	"fmt"
	"time"

	"bucket-manager/core/middleware/rayid"
	"bucket-manager/core/storage"

	"gorm.io/gorm"
)

// Transfer is one recorded upload, import or delete.
type Transfer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Op          string    `gorm:"size:32;index" json:"op"`
	Bucket      string    `gorm:"size:255" json:"bucket"`
	Path        string    `gorm:"size:1024" json:"path"`
	Size        int64     `json:"size"`
	ContentType string    `gorm:"size:255" json:"content_type,omitempty"`
	Success     bool      `json:"success"`
	Error       string    `gorm:"type:text" json:"error,omitempty"`
	RayID       string    `gorm:"size:64" json:"ray_id,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// TransferLog persists storage events. It implements storage.Recorder.
type TransferLog struct {
	db *gorm.DB
}

// NewTransferLog wraps db.
func NewTransferLog(db *gorm.DB) *TransferLog {
	return &TransferLog{db: db}
}

// Migrate creates or updates the transfers table.
func (l *TransferLog) Migrate(ctx context.Context) error {
	if err := l.db.WithContext(ctx).AutoMigrate(&Transfer{}); err != nil {
		return fmt.Errorf("failed to migrate transfers: %w", err)
	}
	return nil
}

// Record stores event. Cancellation of ctx is ignored so that operations
// failing on a cancelled request are still logged.
func (l *TransferLog) Record(ctx context.Context, event storage.Event) error {
	ctx = context.WithoutCancel(ctx)

	t := Transfer{
		Op:          event.Op,
		Bucket:      event.Bucket,
		Path:        event.Path,
		Size:        event.Size,
		ContentType: event.ContentType,
		Success:     event.Err == nil,
		RayID:       rayid.FromContext(ctx),
	}
	if event.Err != nil {
		t.Error = event.Err.Error()
	}

	if err := l.db.WithContext(ctx).Create(&t).Error; err != nil {
		return fmt.Errorf("failed to record transfer: %w", err)
	}
	return nil
}

// Recent returns up to limit transfers, newest first.
func (l *TransferLog) Recent(ctx context.Context, limit int) ([]Transfer, error) {
	if limit <= 0 {
		limit = 50
	}

	var transfers []Transfer
	if err := l.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&transfers).Error; err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	return transfers, nil
}
