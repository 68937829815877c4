package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/pkg/database"
	"github.com/d60-Lab/gin-blog/pkg/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the posts and categories tables",
		RunE: func(*cobra.Command, []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)
			logger.Info("migration done", zap.String("driver", cfg.Database.Driver))
			return nil
		},
	}
}
