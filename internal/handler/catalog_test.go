package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/lateshow-api/internal/events"
	"github.com/iliyamo/lateshow-api/internal/handler"
	"github.com/iliyamo/lateshow-api/internal/repository"
	"github.com/iliyamo/lateshow-api/internal/router"
	"github.com/iliyamo/lateshow-api/internal/testsupport"
)

// recorder keeps every published event.
type recorder struct {
	events []events.Event
	err    error
}

func (r *recorder) Publish(_ context.Context, ev events.Event) error {
	r.events = append(r.events, ev)
	return r.err
}

type server struct {
	e   *echo.Echo
	pub *recorder
}

func newServer(t *testing.T) *server {
	t.Helper()
	db := testsupport.OpenSeededDB(t)
	pub := &recorder{}
	h := handler.NewCatalogHandler(
		repository.NewEpisodeRepo(db),
		repository.NewGuestRepo(db),
		repository.NewAppearanceRepo(db),
		pub,
		zap.NewNop(),
	)
	e := router.New(zap.NewNop())
	router.RegisterRoutes(e, db)
	router.RegisterCatalog(e, h)
	return &server{e: e, pub: pub}
}

func (s *server) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestListEpisodesOmitsAppearances(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodGet, "/episodes", "")
	require.Equal(t, http.StatusOK, rec.Code)

	items := decode[[]map[string]any](t, rec)
	require.Len(t, items, 5)
	for _, item := range items {
		assert.Contains(t, item, "id")
		assert.Contains(t, item, "date")
		assert.Contains(t, item, "number")
		assert.NotContains(t, item, "appearances")
	}
	assert.Equal(t, "1/11/99", items[0]["date"])
}

func TestGetEpisodeNestsGuests(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodGet, "/episodes/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.EqualValues(t, 1, body["id"])
	apps, ok := body["appearances"].([]any)
	require.True(t, ok)
	require.Len(t, apps, 2)
	for _, raw := range apps {
		app := raw.(map[string]any)
		assert.NotContains(t, app, "episode")
		guest, ok := app["guest"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, guest, "name")
		assert.NotContains(t, guest, "appearances")
	}
}

func TestGetEpisodeNotFound(t *testing.T) {
	s := newServer(t)

	for _, path := range []string{
		"/episodes/999",
		"/episodes/abc",
		"/episodes/0",
		"/episodes/9223372036854775808",
		"/episodes/18446744073709551615",
	} {
		rec := s.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.JSONEq(t, `{"error":"Episode not found"}`, rec.Body.String(), path)
	}
}

func TestOversizedIDsAreNotFound(t *testing.T) {
	s := newServer(t)

	cases := []struct {
		method, path, body string
	}{
		{http.MethodDelete, "/episodes/9223372036854775808", `{"error":"Episode not found"}`},
		{http.MethodDelete, "/episodes/18446744073709551615", `{"error":"Episode not found"}`},
		{http.MethodGet, "/guests/18446744073709551615", `{"error":"Guest not found"}`},
		{http.MethodDelete, "/guests/9223372036854775808", `{"error":"Guest not found"}`},
	}
	for _, tc := range cases {
		rec := s.do(tc.method, tc.path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.method+" "+tc.path)
		assert.JSONEq(t, tc.body, rec.Body.String(), tc.method+" "+tc.path)
	}
	assert.Empty(t, s.pub.events)
}

func TestDeleteEpisodeCascades(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodDelete, "/episodes/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Episode deleted successfully"}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/episodes/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Guest 2 only ever appeared on episodes 1 and 2.
	rec = s.do(http.MethodGet, "/guests/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	guest := decode[map[string]any](t, rec)
	apps := guest["appearances"].([]any)
	require.Len(t, apps, 1)
	assert.EqualValues(t, 2, apps[0].(map[string]any)["episode_id"])

	rec = s.do(http.MethodDelete, "/episodes/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Episode not found"}`, rec.Body.String())

	require.Len(t, s.pub.events, 1)
	assert.Equal(t, events.EpisodeDeleted, s.pub.events[0].Type)
	assert.Equal(t, uint64(1), s.pub.events[0].EpisodeID)
}

func TestListGuests(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodGet, "/guests", "")
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode[[]map[string]any](t, rec)
	require.Len(t, items, 5)
	assert.Equal(t, map[string]any{"id": float64(1), "name": "Michael J. Fox", "occupation": "actor"}, items[0])
}

func TestGetGuestNestsEpisodes(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodGet, "/guests/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	apps := body["appearances"].([]any)
	require.Len(t, apps, 2)
	for _, raw := range apps {
		app := raw.(map[string]any)
		assert.NotContains(t, app, "guest")
		assert.Contains(t, app["episode"], "date")
	}

	rec = s.do(http.MethodGet, "/guests/77", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Guest not found"}`, rec.Body.String())
}

func TestDeleteGuest(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodDelete, "/guests/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Guest deleted successfully"}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/episodes/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	apps := decode[map[string]any](t, rec)["appearances"].([]any)
	require.Len(t, apps, 1)
	assert.EqualValues(t, 3, apps[0].(map[string]any)["guest_id"])

	rec = s.do(http.MethodDelete, "/guests/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateAppearance(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodPost, "/appearances", `{"rating":5,"episode_id":2,"guest_id":3}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode[map[string]any](t, rec)
	assert.EqualValues(t, 5, body["rating"])
	assert.EqualValues(t, 2, body["episode_id"])
	assert.EqualValues(t, 3, body["guest_id"])
	episode, ok := body["episode"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, episode, "appearances")
	guest, ok := body["guest"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Tracey Ullman", guest["name"])
	assert.NotContains(t, guest, "appearances")

	require.Len(t, s.pub.events, 1)
	ev := s.pub.events[0]
	assert.Equal(t, events.AppearanceCreated, ev.Type)
	assert.Equal(t, uint64(2), ev.EpisodeID)
	assert.Equal(t, 5, ev.Rating)
}

func TestCreateAppearanceValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"rating too high", `{"rating":6,"episode_id":1,"guest_id":1}`},
		{"rating too low", `{"rating":0,"episode_id":1,"guest_id":1}`},
		{"missing rating", `{"episode_id":1,"guest_id":1}`},
		{"missing guest", `{"rating":3,"episode_id":1}`},
		{"unknown episode", `{"rating":3,"episode_id":999,"guest_id":1}`},
		{"unknown guest", `{"rating":3,"episode_id":1,"guest_id":999}`},
		{"episode id out of range", `{"rating":3,"episode_id":18446744073709551615,"guest_id":1}`},
		{"guest id out of range", `{"rating":3,"episode_id":1,"guest_id":9223372036854775808}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newServer(t)
			rec := s.do(http.MethodPost, "/appearances", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"errors":["validation errors"]}`, rec.Body.String())
			assert.Empty(t, s.pub.events)

			// nothing was committed
			rec = s.do(http.MethodGet, "/episodes/1", "")
			apps := decode[map[string]any](t, rec)["appearances"].([]any)
			assert.Len(t, apps, 2)
		})
	}
}

func TestCreateAppearanceMalformedBody(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodPost, "/appearances", `{"rating":"five"`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[map[string][]string](t, rec)
	require.Len(t, body["errors"], 1)
	assert.NotEqual(t, "validation errors", body["errors"][0])
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	s := newServer(t)
	s.pub.err = errors.New("broker down")

	rec := s.do(http.MethodPost, "/appearances", `{"rating":2,"episode_id":4,"guest_id":4}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, s.pub.events, 1)
}

func TestHealth(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestFrontend(t *testing.T) {
	t.Run("not built", func(t *testing.T) {
		e := echo.New()
		router.RegisterFrontend(e, handler.Frontend{Dir: t.TempDir()})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, handler.FrontendNotBuilt, rec.Body.String())
	})

	t.Run("built", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "static"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "static", "main.js"), []byte("console.log(1)"), 0o644))

		e := echo.New()
		router.RegisterFrontend(e, handler.Frontend{Dir: dir})

		for path, want := range map[string]string{
			"/":                 "<html>app</html>",
			"/static/main.js":   "console.log(1)",
			"/episodes-view/3":  "<html>app</html>",
			"/../../etc/passwd": "<html>app</html>",
		} {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, rec.Code, path)
			assert.Equal(t, want, rec.Body.String(), path)
		}
	})
}
