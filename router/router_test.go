package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"budget/config"
	"budget/database"
	"budget/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func newTestRouter(t *testing.T, rl config.RateLimitConfig) http.Handler {
	t.Helper()
	db, err := database.Open(sqlite.Open(":memory:"), "silent")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { sqlDB.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{
		Server:    config.ServerConfig{Mode: "test"},
		RateLimit: rl,
	}
	return SetupRouter(ctx, cfg, service.NewBudgetService(db))
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestSetupRouter_HealthAndSwagger(t *testing.T) {
	r := newTestRouter(t, config.RateLimitConfig{})

	w := serve(r, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = serve(r, "GET", "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/months/{year}/{month}/transactions")
}

func TestSetupRouter_Routes(t *testing.T) {
	r := newTestRouter(t, config.RateLimitConfig{})

	w := serve(r, "POST", "/api/months", `{"year":2024,"month":"march"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = serve(r, "POST", "/api/months/2024/March/transactions", `{"name":"Salary","amount":1000,"type":"income"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	routes := []struct {
		method, path string
		want         int
	}{
		{"GET", "/api/months", http.StatusOK},
		{"GET", "/api/months/2024/march", http.StatusOK},
		{"GET", "/api/months/2024/March/transactions", http.StatusOK},
		{"GET", "/api/months/2024/March/health", http.StatusOK},
		{"POST", "/api/integrity/reconcile", http.StatusOK},
		{"GET", "/api/months/2025/March", http.StatusNotFound},
	}
	for _, rt := range routes {
		w := serve(r, rt.method, rt.path, "")
		assert.Equal(t, rt.want, w.Code, "%s %s", rt.method, rt.path)
	}
}

func TestSetupRouter_CORSPreflight(t *testing.T) {
	r := newTestRouter(t, config.RateLimitConfig{})

	w := serve(r, "OPTIONS", "/api/months", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetupRouter_WriteRateLimit(t *testing.T) {
	r := newTestRouter(t, config.RateLimitConfig{Enabled: true, MaxRequests: 2, Window: time.Minute})

	assert.Equal(t, http.StatusCreated, serve(r, "POST", "/api/months", `{"year":2024,"month":"March"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, "POST", "/api/months", `{"year":2024,"month":"March"}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, "POST", "/api/months", `{"year":2024,"month":"April"}`).Code)

	// 读接口不受限
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(r, "GET", "/api/months", "").Code)
	}
}
