package main

import (
	"errors"
	"os"

	"taskboard/internal/app"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or inspect database migrations",
}

func init() {
	migrateCmd.PersistentFlags().String("dsn", "", "Postgres DSN (default $PG_DSN)")
	for _, sub := range []struct{ use, short string }{
		{"up", "Apply all pending migrations"},
		{"down", "Roll back the most recent migration"},
		{"status", "Print the status of every migration"},
	} {
		command := sub.use
		migrateCmd.AddCommand(&cobra.Command{
			Use:   sub.use,
			Short: sub.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				dsn, err := resolveDSN(cmd)
				if err != nil {
					return err
				}
				return app.Migrate(cmd.Context(), dsn, command)
			},
		})
	}
	rootCmd.AddCommand(migrateCmd)
}

func resolveDSN(cmd *cobra.Command) (string, error) {
	dsn, _ := cmd.Flags().GetString("dsn")
	if dsn == "" {
		dsn = os.Getenv("PG_DSN")
	}
	if dsn == "" {
		return "", errors.New("--dsn or PG_DSN is required")
	}
	return dsn, nil
}
