package cmd

import (
	"context"
	"fmt"

	"bucket-manager/core/config"
	"bucket-manager/core/database"
	"bucket-manager/core/logger"
	"bucket-manager/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configDir string

// runtime is what every command needs after startup.
type runtime struct {
	cfg       *config.Config
	logger    *zap.Logger
	reg       *storage.Registration
	transfers *database.TransferLog
}

// flagBuilder applies the persistent override flags the user actually set.
func flagBuilder(cmd *cobra.Command) storage.Builder {
	flags := cmd.Flags()
	return func(cfg storage.Config) storage.Config {
		if flags.Changed("endpoint") {
			cfg.Endpoint, _ = flags.GetString("endpoint")
		}
		if flags.Changed("bucket") {
			cfg.Bucket, _ = flags.GetString("bucket")
		}
		if flags.Changed("secure") {
			cfg.UseSSL, _ = flags.GetBool("secure")
		}
		return cfg
	}
}

// setup loads configuration, builds the logger, connects the optional transfer
// log and registers storage. With ping set it also runs the startup liveness check.
func setup(ctx context.Context, cmd *cobra.Command, ping bool) (*runtime, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	rt := &runtime{cfg: cfg, logger: logg}

	opts := []storage.Option{
		storage.WithBuilder(flagBuilder(cmd)),
		storage.WithRegistrationLogger(logg),
	}

	if cfg.Database.Enabled {
		if db, err := database.Connect(ctx, cfg.Database); err != nil {
			logg.Warn("Optional database connection failed, transfer log disabled", zap.Error(err))
		} else {
			transfers := database.NewTransferLog(db)
			if err := transfers.Migrate(ctx); err != nil {
				logg.Warn("Transfer log migration failed, transfer log disabled", zap.Error(err))
			} else {
				rt.transfers = transfers
				opts = append(opts, storage.WithTransferRecorder(transfers))
				logg.Info("Transfer log enabled")
			}
		}
	}

	reg, err := storage.Register(cfg.Storage, opts...)
	if err != nil {
		return nil, err
	}
	rt.reg = reg

	if ping {
		if err := reg.Ping(ctx); err != nil {
			return nil, err
		}
		logg.Debug("Storage reachable", zap.String("endpoint", reg.Config().Host()), zap.String("bucket", reg.Config().Bucket))
	}

	return rt, nil
}
