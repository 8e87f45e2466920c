package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/lateshow-api/internal/database"
)

func newInitDBCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the catalog tables if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := ctx.database()
			if err != nil {
				return err
			}
			if err := database.Migrate(cmd.Context(), db, ctx.cfg.DBDriver); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database tables created successfully!")
			return nil
		},
	}
}
