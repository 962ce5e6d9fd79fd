package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/config"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/database"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/services"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type echoLLM struct{}

func (echoLLM) Name() string { return "echo" }

func (echoLLM) Complete(context.Context, string) (string, error) {
	return "Sure!\n```json\n[{\"type\":\"text\",\"content\":\"Hello\"}]\n```", nil
}

func setupRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	store := services.NewGormSchemaStore(db)
	require.NoError(t, store.Migrate(context.Background()))
	database.RedisClient = nil
	services.InitSchemaStore(store, time.Second)
	services.InitGenerator(echoLLM{}, time.Second)

	if cfg == nil {
		cfg = &config.Config{Env: "production"}
	}
	return NewRouter(cfg)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := setupRouter(t, nil)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK","message":"Dynamic Interface Compiler API is running"}`, w.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	r := setupRouter(t, nil)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/nothing-here", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Route not found"}`, w.Body.String())
}

func TestSchemaLifecycle(t *testing.T) {
	r := setupRouter(t, nil)

	gen := httptest.NewRequest(http.MethodPost, "/api/generate-schema", strings.NewReader(`{"prompt":"hello page"}`))
	gen.Header.Set("Content-Type", "application/json")
	w := serve(r, gen)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var generated struct {
		Schema []map[string]interface{} `json:"schema"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &generated))

	body, _ := json.Marshal(map[string]interface{}{"name": "Hello", "components": generated.Schema})
	create := httptest.NewRequest(http.MethodPost, "/api/schemas", bytes.NewReader(body))
	create.Header.Set("Content-Type", "application/json")
	w = serve(r, create)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Schema struct {
			ID string `json:"id"`
		} `json:"schema"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/schemas/"+created.Schema.ID, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"content":"Hello"`)

	w = serve(r, httptest.NewRequest(http.MethodDelete, "/api/schemas/"+created.Schema.ID, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/schemas/"+created.Schema.ID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBodyLimit(t *testing.T) {
	r := setupRouter(t, nil)

	huge := `{"prompt":"` + strings.Repeat("a", 11<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate-schema", strings.NewReader(huge))
	req.Header.Set("Content-Type", "application/json")

	w := serve(r, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestCORS(t *testing.T) {
	t.Run("all origins by default", func(t *testing.T) {
		r := setupRouter(t, nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://client.test")
		w := serve(r, req)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allow-list", func(t *testing.T) {
		r := setupRouter(t, &config.Config{CORSOrigins: []string{"http://localhost:5173"}})

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := serve(r, req)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

		req = httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://evil.example")
		w = serve(r, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestMetricsAndSwagger(t *testing.T) {
	r := setupRouter(t, nil)
	serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "interface_compiler_http_requests_total")

	w = serve(r, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/schemas/{id}")
}
