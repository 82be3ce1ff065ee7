package requestid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func serve(t *testing.T, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = Value(c)
		c.Status(http.StatusNoContent)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(headerKey, header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, seen
}

func TestMiddlewareKeepsValidIncomingID(t *testing.T) {
	w, seen := serve(t, "edge-42.abc")
	assert.Equal(t, "edge-42.abc", seen)
	assert.Equal(t, "edge-42.abc", w.Header().Get(headerKey))
}

func TestMiddlewareReplacesSuspiciousID(t *testing.T) {
	_, seen := serve(t, "bad id\r\ninjected")
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)

	_, seen = serve(t, strings.Repeat("a", maxLength+1))
	_, err = uuid.Parse(seen)
	assert.NoError(t, err)
}
