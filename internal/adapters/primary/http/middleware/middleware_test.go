package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	route  string
	method string
	status int
}

type fakeObserver struct {
	requests []recordedRequest
}

func (f *fakeObserver) ObserveRequest(route, method string, status int, _ time.Duration) {
	f.requests = append(f.requests, recordedRequest{route, method, status})
}

func setupRouter(obs RequestObserver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logging(), Metrics(obs))
	r.GET("/articles/:id", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	r := setupRouter(&fakeObserver{})

	req, _ := http.NewRequest("GET", "/articles/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	id := w.Header().Get(headerRequestID)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, w.Body.String())
}

func TestRequestIDPropagated(t *testing.T) {
	r := setupRouter(&fakeObserver{})

	req, _ := http.NewRequest("GET", "/articles/1", nil)
	req.Header.Set(headerRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(headerRequestID))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestRequestIDReplacesUnusableHeader(t *testing.T) {
	r := setupRouter(&fakeObserver{})

	for _, incoming := range []string{"   ", strings.Repeat("x", maxRequestIDLen+1)} {
		req, _ := http.NewRequest("GET", "/articles/1", nil)
		req.Header.Set(headerRequestID, incoming)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		id := w.Header().Get(headerRequestID)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, w.Body.String())
	}
}

func TestGetRequestIDWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetRequestID(c))
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	obs := &fakeObserver{}
	r := setupRouter(obs)

	for _, path := range []string{"/articles/1", "/articles/2", "/nope"} {
		req, _ := http.NewRequest("GET", path, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	require.Len(t, obs.requests, 3)
	assert.Equal(t, recordedRequest{"/articles/:id", "GET", http.StatusOK}, obs.requests[0])
	assert.Equal(t, recordedRequest{"/articles/:id", "GET", http.StatusOK}, obs.requests[1])
	assert.Equal(t, recordedRequest{"unmatched", "GET", http.StatusNotFound}, obs.requests[2])
}
