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

const guestNotFound = "Guest not found"

// ListGuests handles GET /guests.
func (h *CatalogHandler) ListGuests(c echo.Context) error {
	items, err := h.Guests.ListAll(c.Request().Context())
	if err != nil {
		h.Log.Error("list guests", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, serialize.GuestList(items))
}

// GetGuest handles GET /guests/:id and returns the guest with the episodes
// they appeared on.
func (h *CatalogHandler) GetGuest(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": guestNotFound})
	}
	g, err := h.Guests.GetWithAppearances(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": guestNotFound})
		}
		h.Log.Error("get guest", zap.Uint64("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, serialize.Guest(g))
}

// DeleteGuest handles DELETE /guests/:id, removing the guest's appearances
// as well.
func (h *CatalogHandler) DeleteGuest(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": guestNotFound})
	}
	ctx := c.Request().Context()
	if err := h.Guests.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": guestNotFound})
		}
		h.Log.Error("delete guest", zap.Uint64("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}

	ev := events.New(events.GuestDeleted)
	ev.GuestID = id
	h.publish(ctx, ev)

	return c.JSON(http.StatusOK, echo.Map{"message": "Guest deleted successfully"})
}
