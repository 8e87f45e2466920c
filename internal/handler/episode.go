package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/lateshow-api/internal/events"
	"github.com/iliyamo/lateshow-api/internal/repository"
	"github.com/iliyamo/lateshow-api/internal/serialize"
)

const episodeNotFound = "Episode not found"

// ListEpisodes handles GET /episodes and returns id, date and number of
// every episode.
func (h *CatalogHandler) ListEpisodes(c echo.Context) error {
	items, err := h.Episodes.ListAll(c.Request().Context())
	if err != nil {
		h.Log.Error("list episodes", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, serialize.EpisodeList(items))
}

// GetEpisode handles GET /episodes/:id and returns the episode with its
// appearances and their guests.  A non-numeric id is reported as not found.
func (h *CatalogHandler) GetEpisode(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": episodeNotFound})
	}
	ep, err := h.Episodes.GetWithAppearances(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEpisodeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": episodeNotFound})
		}
		h.Log.Error("get episode", zap.Uint64("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, serialize.Episode(ep))
}

// DeleteEpisode handles DELETE /episodes/:id.  The episode's appearances are
// removed with it.
func (h *CatalogHandler) DeleteEpisode(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": episodeNotFound})
	}
	ctx := c.Request().Context()
	if err := h.Episodes.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEpisodeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": episodeNotFound})
		}
		h.Log.Error("delete episode", zap.Uint64("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}

	ev := events.New(events.EpisodeDeleted)
	ev.EpisodeID = id
	h.publish(ctx, ev)

	return c.JSON(http.StatusOK, echo.Map{"message": "Episode deleted successfully"})
}
