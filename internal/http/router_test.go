package http

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/sunday-game-service/internal/http/handlers"
	"github.com/preston-bernstein/sunday-game-service/internal/testutil"
)

func newTestRouter(t *testing.T) (http.Handler, string) {
	t.Helper()
	dir := t.TempDir()
	h := handlers.NewHandler(testutil.NewServiceWithPlayers(testutil.SamplePlayer("p1")), nil)
	return NewRouter(h, dir), dir
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router, _ := newTestRouter(t)

	cases := map[string]int{
		"/health":                   http.StatusOK,
		"/ready":                    http.StatusOK,
		"/api/ping":                 http.StatusOK,
		"/api/players":              http.StatusOK,
		"/api/players/p1":           http.StatusOK,
		"/api/players/missing":      http.StatusNotFound,
		"/api/players/team/None":    http.StatusOK,
		"/api/players/position/X":   http.StatusBadRequest,
		"/does-not-exist":           http.StatusNotFound,
		"/uploads/missing-file.png": http.StatusNotFound,
	}

	for path, expected := range cases {
		rr := testutil.Serve(router, http.MethodGet, path, nil)
		if rr.Code != expected {
			t.Fatalf("route %s expected status %d, got %d", path, expected, rr.Code)
		}
	}
}

func TestRouterServesUploads(t *testing.T) {
	router, dir := newTestRouter(t)
	if err := os.WriteFile(filepath.Join(dir, "player-1-a.png"), []byte("img"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	rr := testutil.Serve(router, http.MethodGet, "/uploads/player-1-a.png", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if rr.Body.String() != "img" {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}

	rr = testutil.Serve(router, http.MethodGet, "/uploads/", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestRouterWithoutUploadsDir(t *testing.T) {
	h := handlers.NewHandler(testutil.NewServiceWithPlayers(), nil)
	rr := testutil.Serve(NewRouter(h, ""), http.MethodGet, "/uploads/x.png", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}
