package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// FrontendNotBuilt is returned in place of the UI when no build is present.
const FrontendNotBuilt = "Frontend not built. Run 'cd frontend && npm run build' first."

// Frontend serves the prebuilt single-page app from Dir.
type Frontend struct {
	Dir string
}

// Serve handles GET /*.  Existing files under Dir are sent as is; any other
// path gets index.html so client-side routes work on reload.
func (f Frontend) Serve(c echo.Context) error {
	index := filepath.Join(f.Dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		return c.String(http.StatusOK, FrontendNotBuilt)
	}
	if p := c.Param("*"); p != "" {
		// Clean against a rooted path so ".." cannot climb out of Dir.
		file := filepath.Join(f.Dir, filepath.FromSlash(path.Clean("/"+p)))
		if st, err := os.Stat(file); err == nil && !st.IsDir() {
			return c.File(file)
		}
	}
	return c.File(index)
}
