package cli

import (
	"fmt"

	"github.com/nemopss/financas/backend/db"
	"github.com/spf13/cobra"
)

func migrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	withMigrator := func(fn func(*db.Migrator, *cobra.Command) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			mg, err := db.NewMigrator(a.cfg.Database.DSN())
			if err != nil {
				return err
			}
			defer mg.Close()
			return fn(mg, cmd)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: withMigrator(func(mg *db.Migrator, _ *cobra.Command) error {
				if err := mg.Up(); err != nil {
					return err
				}
				a.logger.Info("migrations applied")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: withMigrator(func(mg *db.Migrator, _ *cobra.Command) error {
				if err := mg.Down(); err != nil {
					return err
				}
				a.logger.Info("rolled back one migration")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			RunE: withMigrator(func(mg *db.Migrator, cmd *cobra.Command) error {
				version, dirty, err := mg.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
				return nil
			}),
		},
	)
	return cmd
}
