package cmd

import (
	"fmt"

	"pizza-delivery/internal/data/repository"
	"pizza-delivery/internal/dto/request"
	"pizza-delivery/internal/usecase"
	"pizza-delivery/pkg/database"

	"github.com/spf13/cobra"
)

var staffReq request.CreateStaffRequest

// staff accounts are never created over HTTP
var createStaffCmd = &cobra.Command{
	Use:   "createstaff",
	Short: "Create a staff user",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := database.InitDB(cmd.Context(), config.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		service := usecase.NewUserService(repository.NewRepository(db, logger), logger)
		user, err := service.CreateStaff(cmd.Context(), &staffReq)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created staff user %q (id %d)\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	createStaffCmd.Flags().StringVar(&staffReq.Username, "username", "", "staff username")
	createStaffCmd.Flags().StringVar(&staffReq.Email, "email", "", "staff email")
	createStaffCmd.Flags().StringVar(&staffReq.Password, "password", "", "staff password")

	for _, name := range []string{"username", "email", "password"} {
		_ = createStaffCmd.MarkFlagRequired(name)
	}
}
