package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"stocksync/internal/config"
	"stocksync/internal/http/handlers"
	"stocksync/internal/repos"
)

// newTestApp wires the full surface against an in-memory store. sourceURL
// defaults to an unreachable address so nothing fetches unless a test says so.
func newTestApp(t *testing.T, sourceURL ...string) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1) // in-memory sqlite is per-connection
	t.Cleanup(func() { _ = db.Close() })

	src := "http://127.0.0.1:1"
	if len(sourceURL) > 0 {
		src = sourceURL[0]
	}
	cfg := &config.Config{
		Source: config.SourceConfig{URL: src, TimeoutSeconds: 1},
	}
	deps := handlers.NewDeps(db, cfg, zerolog.Nop())

	app := fiber.New()
	app.Use(requestid.New())
	handlers.Register(app, deps)
	return app
}

const gbcJSON = `{
  "id": 1,
  "name": "Game Boy Color",
  "description": "Handheld console",
  "price": 129.99,
  "quantity": 8,
  "category": "consoles",
  "imageUrl": "https://img.example/gbc.jpg",
  "supplierName": "Nintendo"
}`

func TestItemCRUDFlow(t *testing.T) {
	app := newTestApp(t)

	// create
	req := httptest.NewRequest("POST", "/api/v1/items", strings.NewReader(gbcJSON))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create: want 201, got %d", resp.StatusCode)
	}

	// read back
	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/items/1", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("get: want 200, got %d", resp.StatusCode)
	}
	b, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(b), "Game Boy Color") {
		t.Fatalf("item missing from response: %s", b)
	}
	if !strings.Contains(string(b), `"status":"IN_STOCK"`) {
		t.Fatalf("availability missing from response: %s", b)
	}

	// update via PUT, path id wins
	upd := strings.Replace(gbcJSON, `"quantity": 8`, `"quantity": 2`, 1)
	req = httptest.NewRequest("PUT", "/api/v1/items/1", strings.NewReader(upd))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("update: want 200, got %d", resp.StatusCode)
	}

	// list reflects the update
	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/items", nil))
	if err != nil {
		t.Fatal(err)
	}
	b, _ = io.ReadAll(resp.Body)
	if !strings.Contains(string(b), `"quantity":2`) {
		t.Fatalf("update not visible in list: %s", b)
	}

	// delete, then gone
	resp, err = app.Test(httptest.NewRequest("DELETE", "/api/v1/items/1", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("delete: want 204, got %d", resp.StatusCode)
	}
	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/items/1", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("want 404 after delete, got %d", resp.StatusCode)
	}
}

func TestGetMissingIsExplicitNotFound(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/items/42", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}
	b, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(b), "not found") {
		t.Fatalf("want explicit not-found body, got %s", b)
	}
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	app := newTestApp(t)

	bad := strings.Replace(gbcJSON, "129.99", "-1", 1)
	req := httptest.NewRequest("POST", "/api/v1/items", strings.NewReader(bad))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
	b, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(b), "price") {
		t.Fatalf("want field-level message, got %s", b)
	}

	// Nothing was stored.
	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/items/1", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("store must be unchanged, got %d", resp.StatusCode)
	}
}

func TestCreateTrimsName(t *testing.T) {
	app := newTestApp(t)

	padded := strings.Replace(gbcJSON, `"Game Boy Color"`, `"  Game Boy Color  "`, 1)
	req := httptest.NewRequest("POST", "/api/v1/items", strings.NewReader(padded))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create: want 201, got %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/items/1", nil))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(b), `"name":"Game Boy Color"`) {
		t.Fatalf("name stored untrimmed: %s", b)
	}
}

func TestRefreshAbsorbsBadCatalogRecord(t *testing.T) {
	// The catalog decodes but carries a record that can never be valid. The
	// refresh must stay silent and the store empty.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
		  "products": [
		    {"id": 1, "title": "fine", "price": 1, "stock": 3},
		    {"id": 2, "title": "broken", "price": 1, "stock": -4}
		  ],
		  "total": 2, "skip": 0, "limit": 30
		}`))
	}))
	defer srv.Close()

	app := newTestApp(t, srv.URL)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/refresh?force=1", nil), 5000)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("refresh must be silent on bad source data, got %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/items", nil))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(b), `"total":0`) {
		t.Fatalf("rejected catalog must not reach the store: %s", b)
	}
}

func TestRefreshFailureIsSilent(t *testing.T) {
	// Source URL points nowhere; the refresh must still answer ok and leave
	// existing records alone.
	app := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/v1/items", strings.NewReader(gbcJSON))
	req.Header.Set("Content-Type", "application/json")
	if _, err := app.Test(req); err != nil {
		t.Fatal(err)
	}

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/refresh?force=1", nil), 5000)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("refresh must be silent, got %d", resp.StatusCode)
	}
	b, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(b), `"online":false`) {
		t.Fatalf("want offline flag after failed fetch, got %s", b)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/items/1", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("cached record must survive failed refresh, got %d", resp.StatusCode)
	}
}

func TestDashboardAndActivityEndpoints(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/v1/items", strings.NewReader(gbcJSON))
	req.Header.Set("Content-Type", "application/json")
	if _, err := app.Test(req); err != nil {
		t.Fatal(err)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/dashboard", nil))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(b), `"totalItems":1`) {
		t.Fatalf("dashboard missing count: %s", b)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/activity?limit=5", nil))
	if err != nil {
		t.Fatal(err)
	}
	b, _ = io.ReadAll(resp.Body)
	if !strings.Contains(string(b), "Added new item: Game Boy Color") {
		t.Fatalf("activity feed missing entry: %s", b)
	}
}
