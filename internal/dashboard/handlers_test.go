package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sangamops/mela-backend/internal/utils"
)

// sessionStub satisfies middleware.SessionFetcher for route-level tests.
type sessionStub struct {
	data utils.SessionData
	err  error
}

func (s sessionStub) FindSessionByID(id string) (utils.SessionData, error) {
	return s.data, s.err
}

// TestViewHandler_ServesPublishedView verifies the endpoint returns the
// current merged view as JSON.
func TestViewHandler_ServesPublishedView(t *testing.T) {
	fs := newFakeStore()
	fs.zones = []ZoneRow{{ID: "z1", Name: "Assi Ghat", CurrentCapacity: 8200, MaxCapacity: 18000}}
	r := startedReconciler(t, fs)
	waitFor(t, func() bool { return len(r.View().Zones) == 1 }, "initial zone snapshot")

	h := NewHandlers(r, NewCommands(fs))
	rec := httptest.NewRecorder()
	h.ViewHandler(rec, httptest.NewRequest(http.MethodGet, "/view", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var view View
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(view.Zones) != 1 || view.Zones[0].Name != "Assi Ghat" {
		t.Errorf("zones = %+v", view.Zones)
	}
	if view.Stats.CurrentInArea != 8200 {
		t.Errorf("stats.currentInArea = %d", view.Stats.CurrentInArea)
	}
	if rec.Header().Get("X-Data-Status") != "" {
		t.Error("fresh view must not carry a stale marker")
	}
}

// TestViewHandler_StaleHeader verifies the stale-since indicator is exposed
// while the realtime channel is down.
func TestViewHandler_StaleHeader(t *testing.T) {
	fs := newFakeStore()
	r := startedReconciler(t, fs)
	r.connState(false)

	h := NewHandlers(r, NewCommands(fs))
	rec := httptest.NewRecorder()
	h.ViewHandler(rec, httptest.NewRequest(http.MethodGet, "/view", nil))

	if got := rec.Header().Get("X-Data-Status"); !strings.HasPrefix(got, "stale since ") {
		t.Errorf("X-Data-Status = %q, want stale marker", got)
	}
}

// TestRoutes_CommandsRequireSession verifies mutation routes 401 without a
// session cookie and perform no store writes.
func TestRoutes_CommandsRequireSession(t *testing.T) {
	fs := newFakeStore()
	r := startedReconciler(t, fs)
	router := SetupRoutes(NewHandlers(r, NewCommands(fs)), sessionStub{}, http.NotFoundHandler())

	requests := []*http.Request{
		httptest.NewRequest(http.MethodPost, "/alerts", strings.NewReader(`{"title":"x"}`)),
		httptest.NewRequest(http.MethodPost, "/alerts/alert-001/resolve", nil),
		httptest.NewRequest(http.MethodPatch, "/zones/z1", strings.NewReader(`{}`)),
		httptest.NewRequest(http.MethodPatch, "/devices/d1", strings.NewReader(`{}`)),
	}

	for _, req := range requests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", req.Method, req.URL.Path, rec.Code)
		}
	}
	if n := fs.writeCount(); n != 0 {
		t.Errorf("store saw %d writes without a session, want 0", n)
	}
}

// TestRoutes_ZonePatchRequiresAdmin verifies the role gate on zone updates.
func TestRoutes_ZonePatchRequiresAdmin(t *testing.T) {
	run := func(role string) (int, *fakeStore) {
		fs := newFakeStore()
		r := startedReconciler(t, fs)
		fetcher := sessionStub{data: utils.SessionData{
			UserID:    "u1",
			Role:      role,
			ExpiresAt: time.Now().Add(time.Hour),
		}}
		router := SetupRoutes(NewHandlers(r, NewCommands(fs)), fetcher, http.NotFoundHandler())

		req := httptest.NewRequest(http.MethodPatch, "/zones/z1", strings.NewReader(`{"currentCapacity":12}`))
		req.AddCookie(&http.Cookie{Name: "session_id", Value: "s"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code, fs
	}

	code, fs := run("admin")
	if code != http.StatusAccepted {
		t.Errorf("admin: status = %d, want 202", code)
	}
	if len(fs.updates) != 1 {
		t.Errorf("admin: %d updates, want 1", len(fs.updates))
	}

	code, fs = run("user")
	if code != http.StatusForbidden {
		t.Errorf("user: status = %d, want 403", code)
	}
	if len(fs.updates) != 0 {
		t.Errorf("user: %d updates, want 0", len(fs.updates))
	}
}

// TestRoutes_ResolveAlert verifies the happy path end to end against the
// fake store.
func TestRoutes_ResolveAlert(t *testing.T) {
	fs := newFakeStore()
	r := startedReconciler(t, fs)
	fetcher := sessionStub{data: utils.SessionData{
		UserID:    "operator-7",
		Role:      "user",
		ExpiresAt: time.Now().Add(time.Hour),
	}}
	router := SetupRoutes(NewHandlers(r, NewCommands(fs)), fetcher, http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodPost, "/alerts/alert-001/resolve", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "s"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	if len(fs.updates) != 1 || fs.updates[0].id != "alert-001" {
		t.Errorf("updates = %+v", fs.updates)
	}
}
