package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/khoahotran/career-path/adapters/media_storage"
	"github.com/khoahotran/career-path/adapters/persistence"
	backupUC "github.com/khoahotran/career-path/internal/application/usecase/backup"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export every user profile as JSON and upload it to Cloudinary",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dbPool, err := persistence.NewPostgresPool(ctx, cfg, appLogger)
		if err != nil {
			return err
		}
		defer dbPool.Close()

		uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
		if err != nil {
			return err
		}

		uc := backupUC.NewBackupUseCase(persistence.NewPostgresProfileRepo(dbPool, appLogger), uploader, appLogger)
		res, err := uc.Execute(ctx)
		if err != nil {
			return err
		}
		appLogger.Info("Backup finished", zap.String("url", res.URL), zap.Int("profiles", res.Count))
		return nil
	},
}
