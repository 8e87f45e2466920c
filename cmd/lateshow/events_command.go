package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/lateshow-api/internal/events"
)

func newEventsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect catalog events on the message broker",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "tail",
		Short: "Log every catalog event until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ctx.cfg.AMQPURL == "" {
				return errors.New("AMQP_URL is not set")
			}
			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ctx.log.Info("tailing events", zap.String("exchange", ctx.cfg.EventsExchange))
			return events.Tail(runCtx, ctx.cfg.AMQPURL, ctx.cfg.EventsExchange, func(ev events.Event) {
				ctx.log.Info("event",
					zap.String("id", ev.ID),
					zap.String("type", ev.Type),
					zap.Time("occurred_at", ev.OccurredAt),
					zap.Uint64("appearance_id", ev.AppearanceID),
					zap.Uint64("episode_id", ev.EpisodeID),
					zap.Uint64("guest_id", ev.GuestID),
					zap.Int("rating", ev.Rating))
			})
		},
	})
	return cmd
}
