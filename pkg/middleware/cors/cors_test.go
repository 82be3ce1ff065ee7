package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func do(origins []string, method, origin string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(New(origins))
	r.GET("/api/search", func(c *gin.Context) { c.Status(http.StatusOK) })
	req := httptest.NewRequest(method, "/api/search", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAllowAllWithoutCredentials(t *testing.T) {
	w := do(nil, http.MethodGet, "https://alumni.example.org")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestListedOriginEchoed(t *testing.T) {
	w := do([]string{"https://alumni.example.org/"}, http.MethodGet, "https://alumni.example.org")
	assert.Equal(t, "https://alumni.example.org", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestUnlistedOriginNotEchoed(t *testing.T) {
	w := do([]string{"https://alumni.example.org"}, http.MethodGet, "https://evil.example.com")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPreflightShortCircuits(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(New(nil))
	r.OPTIONS("/api/update-request", func(c *gin.Context) { c.Status(http.StatusTeapot) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/update-request", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
