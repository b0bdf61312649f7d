package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logging())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(requestIDKey))
	})
	return r
}

func TestRequestID_Generated(t *testing.T) {
	r := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get(headerRequestID)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, w.Body.String())
}

func TestRequestID_Propagated(t *testing.T) {
	r := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(headerRequestID, "req-42")
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(headerRequestID))
	assert.Equal(t, "req-42", w.Body.String())
}

func TestRequestID_ReplacesUnsafe(t *testing.T) {
	r := setupRouter()

	for _, incoming := range []string{
		"req 42",
		"req-42\tlevel=error",
		"id=\"x\"",
		"tag{1}",
		strings.Repeat("a", maxRequestIDLen+1),
	} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(headerRequestID, incoming)
		r.ServeHTTP(w, req)

		id := w.Header().Get(headerRequestID)
		assert.NotEqual(t, incoming, id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err, "incoming %q", incoming)
		assert.Equal(t, id, w.Body.String())
	}
}

func TestRequestID_KeepsLongestAllowed(t *testing.T) {
	r := setupRouter()
	incoming := strings.Repeat("A1_.:-", 10) + "zzzz"

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(headerRequestID, incoming)
	r.ServeHTTP(w, req)

	assert.Len(t, incoming, maxRequestIDLen)
	assert.Equal(t, incoming, w.Header().Get(headerRequestID))
}
