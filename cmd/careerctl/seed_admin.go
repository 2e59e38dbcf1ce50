package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/khoahotran/career-path/adapters/persistence"
	authUC "github.com/khoahotran/career-path/internal/application/usecase/auth"
)

var adminEmail, adminPassword string

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the admin account, or promote an existing user to admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		email := adminEmail
		if email == "" {
			email = os.Getenv("ADMIN_EMAIL")
		}
		password := adminPassword
		if password == "" {
			password = os.Getenv("ADMIN_PASSWORD")
		}

		dbPool, err := persistence.NewPostgresPool(ctx, cfg, appLogger)
		if err != nil {
			return err
		}
		defer dbPool.Close()

		uc := authUC.NewSeedAdminUseCase(persistence.NewPostgresUserRepo(dbPool, appLogger), appLogger)
		u, err := uc.Execute(ctx, email, password)
		if err != nil {
			return err
		}
		appLogger.Info("Admin ready", zap.String("email", u.Email), zap.String("user_id", u.ID.String()))
		return nil
	},
}

func init() {
	seedAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email (default $ADMIN_EMAIL)")
	seedAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password (default $ADMIN_PASSWORD)")
}
