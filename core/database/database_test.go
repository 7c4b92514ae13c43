package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Host:           "127.0.0.1",
			Port:           1,
			User:           "root",
			Password:       "p@ss:word",
			Name:           "bucket_manager",
			TimeoutSeconds: 1,
		}

		db, err := Connect(context.Background(), cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}
