// Package handler exposes the catalog over HTTP.  Handlers translate path
// and body input into repository calls and map repository errors onto
// status codes; serialization lives in package serialize.
package handler

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/iliyamo/lateshow-api/internal/events"
	"github.com/iliyamo/lateshow-api/internal/repository"
)

// CatalogHandler bundles the repositories behind the episode, guest and
// appearance endpoints.
type CatalogHandler struct {
	Episodes    *repository.EpisodeRepo    // Episodes provides episode persistence
	Guests      *repository.GuestRepo      // Guests provides guest persistence
	Appearances *repository.AppearanceRepo // Appearances provides appearance persistence
	Events      events.Publisher           // Events receives a notification after each write
	Log         *zap.Logger
}

// NewCatalogHandler constructs a CatalogHandler and panics if a repository
// is nil.  A nil publisher or logger is replaced by a no-op.
func NewCatalogHandler(episodes *repository.EpisodeRepo, guests *repository.GuestRepo, appearances *repository.AppearanceRepo, pub events.Publisher, log *zap.Logger) *CatalogHandler {
	if episodes == nil || guests == nil || appearances == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	if pub == nil {
		pub = events.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogHandler{
		Episodes:    episodes,
		Guests:      guests,
		Appearances: appearances,
		Events:      pub,
		Log:         log,
	}
}

// publish hands ev to the publisher.  A failure is logged and otherwise
// ignored; the write it describes has already committed.
func (h *CatalogHandler) publish(ctx context.Context, ev events.Event) {
	if err := h.Events.Publish(ctx, ev); err != nil {
		h.Log.Warn("publish event failed", zap.String("type", ev.Type), zap.String("event_id", ev.ID), zap.Error(err))
	}
}

// parseID parses a numeric path id.  Ids are stored as signed 64-bit
// integers, so anything above math.MaxInt64 cannot name a row.
func parseID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(raw, 10, 63)
	return id, err == nil
}
