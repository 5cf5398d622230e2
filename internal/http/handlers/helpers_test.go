package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
	"storefront/internal/http/handlers"
	"storefront/internal/metrics"
	"storefront/internal/repos"
	"storefront/internal/storage"
)

type testEnv struct {
	app       *fiber.App
	db        *sqlx.DB
	deps      *handlers.Deps
	staticDir string
}

func testConfig(staticDir string) config.Config {
	return config.Config{
		Env:              "test",
		StaticDir:        staticDir,
		BodyLimit:        8 << 20,
		SigninRateMax:    1000,
		SigninRateWindow: time.Minute,
		CORSOrigins:      "*",
	}
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWith(t, func(*config.Config) {})
}

func newTestEnvWith(t *testing.T, tweak func(*config.Config)) *testEnv {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	dir := t.TempDir()
	store := storage.NewLocalStore(filepath.Join(dir, "images", "products"), "/images/products")
	deps, err := handlers.NewDeps(db, store)
	require.NoError(t, err)

	cfg := testConfig(dir)
	tweak(&cfg)
	app := handlers.NewApp(cfg, deps, metrics.NewHTTP())
	return &testEnv{app: app, db: db, deps: deps, staticDir: dir}
}

// do sends body as JSON (nil for none) and returns status and raw body.
func (e *testEnv) do(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.send(t, req)
}

func jsonRequest(method, path, raw string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (e *testEnv) send(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(b, &out), string(b))
	return out
}

func errorMsg(t *testing.T, b []byte) string {
	t.Helper()
	return decode[map[string]string](t, b)["error"]
}

type userBody struct {
	User struct {
		ID       int64   `json:"id"`
		Name     string  `json:"name"`
		Email    string  `json:"email"`
		IsAdmin  bool    `json:"isAdmin"`
		Password *string `json:"password"`
	} `json:"user"`
}

func (e *testEnv) signup(t *testing.T, name, email, password string) int64 {
	t.Helper()
	st, b := e.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, st, string(b))
	return decode[userBody](t, b).User.ID
}

type productBody struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	InStock  int     `json:"inStock"`
}

func (e *testEnv) createProduct(t *testing.T, name string, price float64) int64 {
	t.Helper()
	st, b := e.do(t, http.MethodPost, "/products", map[string]any{"name": name, "price": price})
	require.Equal(t, http.StatusCreated, st, string(b))
	return decode[productBody](t, b).ID
}
