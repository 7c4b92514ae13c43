package cmd

import (
	"encoding/json"
	"fmt"

	"bucket-manager/feature/health"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check storage connectivity and the default bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd.Context(), cmd, false)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		report := health.NewService(rt.reg, rt.logger).Check(cmd.Context())

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Println(string(data))

		if !report.Healthy() {
			return fmt.Errorf("storage unhealthy: %s", report.Error)
		}
		rt.logger.Info("Storage is healthy", zap.String("bucket", report.Bucket))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(healthCmd)
}
