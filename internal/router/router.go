package router // package router defines how HTTP routes are registered for the API

import (
	"database/sql"

	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/lateshow-api/internal/handler"    // import the handlers that implement the endpoints
	"github.com/iliyamo/lateshow-api/internal/middleware" // request id and access log middleware
)

// New creates an Echo instance with the shared middleware stack installed:
// request ids, one access-log line per request and panic recovery.
func New(log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())
	return e
}

// RegisterRoutes registers routes that are not part of the catalog.
// At the moment it only exposes a health check endpoint.
func RegisterRoutes(e *echo.Echo, db *sql.DB) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterCatalog registers the episode, guest and appearance endpoints.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler) {
	// ---- Episodes ----
	e.GET("/episodes", h.ListEpisodes)
	e.GET("/episodes/:id", h.GetEpisode)
	e.DELETE("/episodes/:id", h.DeleteEpisode)

	// ---- Guests ----
	e.GET("/guests", h.ListGuests)
	e.GET("/guests/:id", h.GetGuest)
	e.DELETE("/guests/:id", h.DeleteGuest)

	// ---- Appearances ----
	e.POST("/appearances", h.CreateAppearance)
}

// RegisterFrontend serves the built UI for every path the API does not
// claim.  Echo matches static and parameter routes before the wildcard, so
// the catalog endpoints are unaffected.
func RegisterFrontend(e *echo.Echo, f handler.Frontend) {
	e.GET("/*", f.Serve)
}
