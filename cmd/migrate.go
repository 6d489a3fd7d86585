package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-DetailingBooking/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply embedded SQL migrations",
	Long: `Apply the SQL migrations embedded in the binary.

Each migration runs in its own transaction and is recorded in schema_migrations,
already applied versions are skipped.`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	applied, err := migrations.Up(cmd.Context(), a.db, a.tx, a.log)
	if err != nil {
		a.log.Error("Migration failed: %v", err)
		return err
	}

	if len(applied) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date")
		return nil
	}
	for _, v := range applied {
		fmt.Fprintf(cmd.OutOrStdout(), "Applied %s\n", v)
	}
	return nil
}
