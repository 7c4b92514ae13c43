// Package database handles the optional MySQL connection and the transfer log.
//
// # Connect
//
// Connect opens a GORM connection with pool limits and verifies it with a ping
// bounded by the configured timeout.
//
// # Transfer Log
//
// TransferLog implements storage.Recorder. Every upload, import and delete made
// through a storage repository is stored as a Transfer row, including failures,
// together with the request's ray id. Recent serves the newest rows to the
// transfers feature.
//
// # Usage
//
//	db, err := database.Connect(ctx, cfg.Database)
//	if err != nil {
//	    logg.Warn("Transfer log disabled", zap.Error(err))
//	}
//	transfers := database.NewTransferLog(db)
//	reg, err := storage.Register(cfg.Storage, storage.WithTransferRecorder(transfers))
package database
