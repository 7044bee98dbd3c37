package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khoahotran/portfolio-cms/adapters/media_storage"
	"github.com/khoahotran/portfolio-cms/adapters/persistence"
	backupUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/backup"
	"github.com/khoahotran/portfolio-cms/pkg/auth"
)

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash to store as the admin password",
		Args:  cobra.ExactArgs(1),
		// No config needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func backupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Upload a snapshot of the stored portfolio to Cloudinary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.CloudinaryEnabled() {
				return errors.New("cloudinary is not configured")
			}
			uploader, err := media_storage.NewCloudinaryAdapter(a.cfg, a.log)
			if err != nil {
				return err
			}
			store, release, err := a.store(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			out, err := backupUC.NewBackupUseCase(store, uploader, a.log).Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", out.URL, out.Bytes)
			return nil
		},
	}
}

func dbCmd(a *app) *cobra.Command {
	command := &cobra.Command{
		Use:   "db",
		Short: "db commands",
	}
	command.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply pending migrations to the postgres database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.DB.DSN == "" {
				return errors.New("db.dsn is not configured")
			}
			if err := persistence.MigrateUp(a.cfg.DB.Migrations, a.cfg.DB.DSN, a.log); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	})
	return command
}
