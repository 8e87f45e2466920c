package handler // declare the package name; contains HTTP handlers

import (
	"context"
	"database/sql"
	"net/http" // net/http provides status codes and response helpers
	"time"

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Health answers GET /healthz for load balancers and monitoring.  It pings
// the store and reports "ok" with 200, or "unavailable" with 503 when the
// database does not answer within a second.
func Health(db *sql.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return c.String(http.StatusServiceUnavailable, "unavailable")
		}
		return c.String(http.StatusOK, "ok")
	}
}
