package cmd

import (
	"fmt"

	"pizza-delivery/pkg/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the embedded database migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		up := args[0] == "up"
		logger.Info("Running migrations", zap.String("direction", args[0]))

		if err := database.Migrate(config.Database.DSN(), up); err != nil {
			logger.Error("Migration failed", zap.Error(err))
			return fmt.Errorf("migrate %s: %w", args[0], err)
		}

		logger.Info("Migrations applied", zap.String("direction", args[0]))
		return nil
	},
}
