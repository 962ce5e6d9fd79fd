package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/metrics"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logger(), Recovery(), Metrics(), MaxBody(16))
	return r
}

func TestLoggerSetsRequestID(t *testing.T) {
	r := newTestEngine()
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, RequestID(c))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestRecoveryReturnsGenericError(t *testing.T) {
	utils.SetExposeDetails(false)
	r := newTestEngine()
	r.GET("/boom", func(c *gin.Context) {
		panic("database exploded")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Internal server error", resp.Error)
	assert.NotContains(t, w.Body.String(), "database exploded")
}

func TestMaxBodyRejectsLargePayload(t *testing.T) {
	r := newTestEngine()
	r.POST("/echo", func(c *gin.Context) {
		var body map[string]interface{}
		if !utils.BindAndValidate(c, &body) {
			return
		}
		c.JSON(http.StatusOK, body)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString(`{"a":1}`)))
	assert.Equal(t, http.StatusOK, w.Code)

	large := `{"a":"` + strings.Repeat("x", 64) + `"}`
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString(large)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	r := newTestEngine()
	r.GET("/items/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/:id", "204")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
	}
	assert.Equal(t, before+3, testutil.ToFloat64(counter))

	unmatched := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	before = testutil.ToFloat64(unmatched)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(unmatched))
}
