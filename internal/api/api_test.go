package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lunacy/internal/db"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "lunacy-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler := NewHandler(database, "test-secret", time.UTC, false)
	app := fiber.New()
	RegisterRoutes(app, handler)
	return app
}

func jsonRequest(method string, target string, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, target, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	return request
}

func doJSON(t *testing.T, app *fiber.App, request *http.Request, wantStatus int) map[string]any {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if response.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected status %d, got %d (%s)",
			request.Method, request.URL.Path, wantStatus, response.StatusCode, string(body))
	}

	// Plain-text error bodies (fiber's default error handler) stay undecoded.
	decoded := map[string]any{}
	if len(body) > 0 && strings.Contains(response.Header.Get("Content-Type"), "json") {
		if err := json.Unmarshal(body, &decoded); err != nil {
			t.Fatalf("decode body %q: %v", string(body), err)
		}
	}
	return decoded
}

// registerOwner runs the one-time setup and returns the session cookie.
func registerOwner(t *testing.T, app *fiber.App) string {
	t.Helper()

	request := jsonRequest(http.MethodPost, "/api/auth/register",
		`{"email":"owner@example.com","password":"sekrit-pass"}`)
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected register status 201, got %d", response.StatusCode)
	}

	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}
	t.Fatal("expected a session cookie from registration")
	return ""
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)

	status := doJSON(t, app, jsonRequest(http.MethodGet, "/api/auth/status", ""), http.StatusOK)
	if status["setup_complete"] != false {
		t.Fatalf("expected setup_complete=false on a fresh install, got %v", status["setup_complete"])
	}

	cookie := registerOwner(t, app)

	status = doJSON(t, app, jsonRequest(http.MethodGet, "/api/auth/status", ""), http.StatusOK)
	if status["setup_complete"] != true {
		t.Fatalf("expected setup_complete=true after registration, got %v", status["setup_complete"])
	}

	// Registration is one-time.
	doJSON(t, app, jsonRequest(http.MethodPost, "/api/auth/register",
		`{"email":"second@example.com","password":"sekrit-pass"}`), http.StatusConflict)

	// Protected routes need the cookie.
	doJSON(t, app, jsonRequest(http.MethodGet, "/api/days", ""), http.StatusUnauthorized)

	request := jsonRequest(http.MethodGet, "/api/days", "")
	request.Header.Set("Cookie", cookie)
	days := doJSON(t, app, request, http.StatusOK)
	if list, ok := days["days"].([]any); !ok || len(list) != 0 {
		t.Fatalf("expected empty day list, got %v", days["days"])
	}

	// Wrong password is rejected.
	doJSON(t, app, jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"owner@example.com","password":"wrong-pass"}`), http.StatusUnauthorized)
	doJSON(t, app, jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"owner@example.com","password":"sekrit-pass"}`), http.StatusOK)
}

func TestDayEndpointsApplyGapFill(t *testing.T) {
	app := newTestApp(t)
	cookie := registerOwner(t, app)

	authed := func(method string, target string, body string) *http.Request {
		request := jsonRequest(method, target, body)
		request.Header.Set("Cookie", cookie)
		return request
	}

	doJSON(t, app, authed(http.MethodPost, "/api/days/2024-03-18", ""), http.StatusCreated)
	doJSON(t, app, authed(http.MethodPost, "/api/days/2024-03-21", ""), http.StatusCreated)

	days := doJSON(t, app, authed(http.MethodGet, "/api/days", ""), http.StatusOK)
	list, ok := days["days"].([]any)
	if !ok || len(list) != 4 {
		t.Fatalf("expected the 3-day gap filled to 4 days, got %v", days["days"])
	}
	if list[1] != "2024-03-19" || list[2] != "2024-03-20" {
		t.Fatalf("expected synthesized days 19 and 20, got %v", list)
	}

	doJSON(t, app, authed(http.MethodDelete, "/api/days/2024-03-19", ""), http.StatusOK)
	days = doJSON(t, app, authed(http.MethodGet, "/api/days", ""), http.StatusOK)
	if list, _ := days["days"].([]any); len(list) != 3 {
		t.Fatalf("expected removal to stick, got %v", days["days"])
	}

	doJSON(t, app, authed(http.MethodPost, "/api/days/not-a-date", ""), http.StatusBadRequest)
}

func TestDayRangeEndpoints(t *testing.T) {
	app := newTestApp(t)
	cookie := registerOwner(t, app)

	authed := func(method string, target string, body string) *http.Request {
		request := jsonRequest(method, target, body)
		request.Header.Set("Cookie", cookie)
		return request
	}

	doJSON(t, app, authed(http.MethodPost, "/api/days/range",
		`{"from":"2024-03-05","to":"2024-03-01"}`), http.StatusCreated)

	days := doJSON(t, app, authed(http.MethodGet, "/api/days", ""), http.StatusOK)
	if list, _ := days["days"].([]any); len(list) != 5 {
		t.Fatalf("expected swapped endpoints to expand to 5 days, got %v", days["days"])
	}

	doJSON(t, app, authed(http.MethodDelete, "/api/days/range",
		`{"from":"2024-03-02","to":"2024-03-04"}`), http.StatusOK)
	days = doJSON(t, app, authed(http.MethodGet, "/api/days", ""), http.StatusOK)
	if list, _ := days["days"].([]any); len(list) != 2 {
		t.Fatalf("expected 2 days after range delete, got %v", days["days"])
	}
}

func TestNoteEndpointsValidateKind(t *testing.T) {
	app := newTestApp(t)
	cookie := registerOwner(t, app)

	authed := func(method string, target string, body string) *http.Request {
		request := jsonRequest(method, target, body)
		request.Header.Set("Cookie", cookie)
		return request
	}

	created := doJSON(t, app, authed(http.MethodPost, "/api/notes",
		`{"date":"2024-03-14","kind":"LH","result":"positive"}`), http.StatusCreated)
	if created["kind"] != "LH" || created["result"] != "positive" {
		t.Fatalf("unexpected created note: %v", created)
	}

	doJSON(t, app, authed(http.MethodPost, "/api/notes",
		`{"date":"2024-03-14","kind":"MOOD"}`), http.StatusBadRequest)
	doJSON(t, app, authed(http.MethodPost, "/api/notes",
		`{"date":"2024-03-14","kind":"LH","result":"maybe"}`), http.StatusBadRequest)

	listed := doJSON(t, app, authed(http.MethodGet, "/api/notes?date=2024-03-14", ""), http.StatusOK)
	if notes, _ := listed["notes"].([]any); len(notes) != 1 {
		t.Fatalf("expected one stored note, got %v", listed["notes"])
	}
}

func TestCalendarModelEndpoint(t *testing.T) {
	app := newTestApp(t)
	cookie := registerOwner(t, app)

	authed := func(method string, target string, body string) *http.Request {
		request := jsonRequest(method, target, body)
		request.Header.Set("Cookie", cookie)
		return request
	}

	doJSON(t, app, authed(http.MethodPost, "/api/days/range",
		`{"from":"2024-01-01","to":"2024-01-05"}`), http.StatusCreated)
	doJSON(t, app, authed(http.MethodPost, "/api/days/range",
		`{"from":"2024-01-29","to":"2024-02-02"}`), http.StatusCreated)

	model := doJSON(t, app, authed(http.MethodGet, "/api/calendar/model?cycles=2", ""), http.StatusOK)
	if model["cycle_length"] != float64(28) {
		t.Fatalf("expected cycle length 28, got %v", model["cycle_length"])
	}
	if forecasts, _ := model["forecast_periods"].([]any); len(forecasts) != 2 {
		t.Fatalf("expected 2 forecast periods, got %v", model["forecast_periods"])
	}
	if ranges, _ := model["fertile_ranges"].([]any); len(ranges) != 3 {
		t.Fatalf("expected 3 fertile ranges, got %v", model["fertile_ranges"])
	}

	doJSON(t, app, authed(http.MethodGet, "/api/calendar/model?cycles=99", ""), http.StatusBadRequest)
}

func TestSettingsEndpointClamps(t *testing.T) {
	app := newTestApp(t)
	cookie := registerOwner(t, app)

	authed := func(method string, target string, body string) *http.Request {
		request := jsonRequest(method, target, body)
		request.Header.Set("Cookie", cookie)
		return request
	}

	updated := doJSON(t, app, authed(http.MethodPost, "/api/settings/cycle",
		`{"cycle_length":100,"period_length":0,"ovulation_day":60}`), http.StatusOK)
	if updated["cycle_length"] != float64(60) {
		t.Fatalf("expected cycle length clamped to 60, got %v", updated["cycle_length"])
	}
	// Zero means unset and recovers to the default.
	if updated["period_length"] != float64(5) {
		t.Fatalf("expected period length to fall back to 5, got %v", updated["period_length"])
	}
	if updated["ovulation_day"] != float64(50) {
		t.Fatalf("expected ovulation day clamped to 50, got %v", updated["ovulation_day"])
	}

	cleared := doJSON(t, app, authed(http.MethodPost, "/api/settings/cycle",
		`{"clear_ovulation_day":true}`), http.StatusOK)
	if cleared["ovulation_day"] != nil {
		t.Fatalf("expected ovulation day cleared, got %v", cleared["ovulation_day"])
	}
}
