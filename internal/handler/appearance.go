package handler

import (
	"errors"
	"math"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/lateshow-api/internal/events"
	"github.com/iliyamo/lateshow-api/internal/model"
	"github.com/iliyamo/lateshow-api/internal/repository"
	"github.com/iliyamo/lateshow-api/internal/serialize"
)

// createAppearanceReq uses pointers so a missing field can be told apart
// from a zero value.
type createAppearanceReq struct {
	Rating    *int    `json:"rating"`
	EpisodeID *uint64 `json:"episode_id"`
	GuestID   *uint64 `json:"guest_id"`
}

// validate reports the first missing or out-of-range id and otherwise
// builds the appearance through the rating check.
func (r createAppearanceReq) validate() (*model.Appearance, error) {
	switch {
	case r.Rating == nil:
		return nil, &model.ValidationError{Field: "rating", Message: "rating is required"}
	case r.EpisodeID == nil:
		return nil, &model.ValidationError{Field: "episode_id", Message: "episode_id is required"}
	case r.GuestID == nil:
		return nil, &model.ValidationError{Field: "guest_id", Message: "guest_id is required"}
	case *r.EpisodeID > math.MaxInt64:
		return nil, &model.ValidationError{Field: "episode_id", Message: "episode_id is out of range"}
	case *r.GuestID > math.MaxInt64:
		return nil, &model.ValidationError{Field: "guest_id", Message: "guest_id is out of range"}
	}
	return model.NewAppearance(*r.Rating, *r.EpisodeID, *r.GuestID)
}

// validationFailed is the body sent for rule and reference failures.
var validationFailed = echo.Map{"errors": []string{"validation errors"}}

// CreateAppearance handles POST /appearances.  Validation and reference
// failures answer 400 with a generic message; any other failure answers 400
// with the error text.
func (h *CatalogHandler) CreateAppearance(c echo.Context) error {
	var body createAppearanceReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": []string{err.Error()}})
	}
	a, err := body.validate()
	if err != nil {
		return c.JSON(http.StatusBadRequest, validationFailed)
	}

	ctx := c.Request().Context()
	if err := h.Appearances.Create(ctx, a); err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) || errors.Is(err, repository.ErrInvalidReference) {
			return c.JSON(http.StatusBadRequest, validationFailed)
		}
		h.Log.Error("create appearance", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": []string{err.Error()}})
	}

	ev := events.New(events.AppearanceCreated)
	ev.AppearanceID = a.ID
	ev.EpisodeID = a.EpisodeID
	ev.GuestID = a.GuestID
	ev.Rating = a.Rating
	h.publish(ctx, ev)

	return c.JSON(http.StatusCreated, serialize.Appearance(a))
}
