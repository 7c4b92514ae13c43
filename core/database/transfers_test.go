package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"bucket-manager/core/middleware/rayid"
	"bucket-manager/core/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestTransferLog_Record(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		log := NewTransferLog(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `transfers`").
			WithArgs(storage.OpUpload, "assets", "a.txt", int64(10), "text/plain", true, "", "ray-1", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		ctx := rayid.NewContext(context.Background(), "ray-1")
		err := log.Record(ctx, storage.Event{Op: storage.OpUpload, Bucket: "assets", Path: "a.txt", Size: 10, ContentType: "text/plain"})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FailedOperation", func(t *testing.T) {
		db, mock := setupMockDB(t)
		log := NewTransferLog(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `transfers`").
			WithArgs(storage.OpDelete, "assets", "a.txt", int64(0), "", false, "boom", "", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		err := log.Record(context.Background(), storage.Event{Op: storage.OpDelete, Bucket: "assets", Path: "a.txt", Err: errors.New("boom")})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CancelledContext", func(t *testing.T) {
		db, mock := setupMockDB(t)
		log := NewTransferLog(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `transfers`").
			WithArgs(storage.OpUpload, "assets", "a.txt", int64(0), "", false, context.Canceled.Error(), "ray-2", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(3, 1))
		mock.ExpectCommit()

		ctx, cancel := context.WithCancel(rayid.NewContext(context.Background(), "ray-2"))
		cancel()

		err := log.Record(ctx, storage.Event{Op: storage.OpUpload, Bucket: "assets", Path: "a.txt", Err: context.Canceled})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DatabaseError", func(t *testing.T) {
		db, mock := setupMockDB(t)
		log := NewTransferLog(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `transfers`").WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := log.Record(context.Background(), storage.Event{Op: storage.OpUpload})
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestTransferLog_Recent(t *testing.T) {
	t.Run("Rows", func(t *testing.T) {
		db, mock := setupMockDB(t)
		log := NewTransferLog(db)
		now := time.Now()

		rows := sqlmock.NewRows([]string{"id", "op", "bucket", "path", "size", "content_type", "success", "error", "ray_id", "created_at"}).
			AddRow(2, "delete", "assets", "b.txt", 0, "", true, "", "r2", now).
			AddRow(1, "upload", "assets", "a.txt", 10, "text/plain", true, "", "r1", now)
		mock.ExpectQuery("SELECT \\* FROM `transfers` ORDER BY id desc LIMIT").WillReturnRows(rows)

		transfers, err := log.Recent(context.Background(), 2)
		require.NoError(t, err)
		require.Len(t, transfers, 2)
		assert.Equal(t, uint(2), transfers[0].ID)
		assert.Equal(t, "a.txt", transfers[1].Path)
	})

	t.Run("Error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		log := NewTransferLog(db)

		mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)

		_, err := log.Recent(context.Background(), 0)
		assert.ErrorIs(t, err, assert.AnError)
	})
}
