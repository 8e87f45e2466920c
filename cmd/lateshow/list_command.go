package main

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/iliyamo/lateshow-api/internal/model"
	"github.com/iliyamo/lateshow-api/internal/repository"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print catalog tables",
	}
	cmd.AddCommand(newListEpisodesCommand(ctx))
	cmd.AddCommand(newListGuestsCommand(ctx))
	cmd.AddCommand(newListAppearancesCommand(ctx))
	return cmd
}

func newListEpisodesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "episodes",
		Short: "List episodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := ctx.database()
			if err != nil {
				return err
			}
			items, err := repository.NewEpisodeRepo(db).ListAll(cmd.Context())
			if err != nil {
				return err
			}
			rows := lo.Map(items, func(e *model.Episode, _ int) []string {
				return []string{formatID(e.ID), e.Date, strconv.Itoa(e.Number)}
			})
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(episodeColumns, rows))
			return nil
		},
	}
}

func newListGuestsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "guests",
		Short: "List guests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := ctx.database()
			if err != nil {
				return err
			}
			items, err := repository.NewGuestRepo(db).ListAll(cmd.Context())
			if err != nil {
				return err
			}
			rows := lo.Map(items, func(g *model.Guest, _ int) []string {
				return []string{formatID(g.ID), g.Name, g.Occupation}
			})
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(guestColumns, rows))
			return nil
		},
	}
}

func newListAppearancesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "appearances",
		Short: "List appearances with their episode and guest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := ctx.database()
			if err != nil {
				return err
			}
			items, err := repository.NewAppearanceRepo(db).ListAll(cmd.Context())
			if err != nil {
				return err
			}
			rows := lo.Map(items, appearanceRow)
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(appearanceColumns, rows))
			return nil
		},
	}
}

func appearanceRow(a *model.Appearance, _ int) []string {
	return []string{
		formatID(a.ID),
		strconv.Itoa(a.Episode.Number),
		a.Episode.Date,
		a.Guest.Name,
		strconv.Itoa(a.Rating) + "/5",
	}
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
