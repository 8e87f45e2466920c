package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/lateshow-api/internal/database"
	"github.com/iliyamo/lateshow-api/internal/seed"
)

func newSeedCommand(ctx *commandContext) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the catalog with CSV or built-in sample data",
		Long: "Clears episodes, guests and appearances, then loads episodes.csv (date,number) and\n" +
			"guests.csv (name,occupation) from --dir. A missing file falls back to built-in data.\n" +
			"Six sample appearances linking the first three episodes and guests are always added.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := ctx.database()
			if err != nil {
				return err
			}
			if err := database.Migrate(cmd.Context(), db, ctx.cfg.DBDriver); err != nil {
				return err
			}
			if dir == "" {
				dir = ctx.cfg.SeedDir
			}
			res, err := seed.New(db, ctx.cfg.DBDriver, ctx.log).Run(cmd.Context(), dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d episodes, %d guests, %d appearances\n", res.Episodes, res.Guests, res.Appearances)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory holding episodes.csv and guests.csv (default $SEED_DIR)")
	return cmd
}
