package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/propman/backend/internal/infrastructure/cache"
	"github.com/propman/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	return r
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 32)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})

	t.Run("truncated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", 500))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Len(t, w.Header().Get(RequestIDHeader), MaxRequestIDLength)
	})
}

func TestCORS(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://app.example.co.uk"}
	r := newEngine(CORS(cfg))
	r.GET("/api", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api", nil)
		req.Header.Set("Origin", "https://app.example.co.uk")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://app.example.co.uk", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), IdempotencyKeyHeader)
	})

	t.Run("other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api", nil)
		req.Header.Set("Origin", "https://app.example.co.uk")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("wildcard", func(t *testing.T) {
		wild := newEngine(CORS(CORSConfig{AllowOrigins: []string{"*"}, AllowMethods: []string{"GET"}}))
		wild.GET("/api", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/api", nil)
		req.Header.Set("Origin", "https://anything.example")
		w := httptest.NewRecorder()
		wild.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestBodyLimit(t *testing.T) {
	r := newEngine(RequestID(), BodyLimit(16))
	r.POST("/echo", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"a":1}`)))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"a":"`+strings.Repeat("x", 64)+`"}`)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeRequestTooLarge, resp.Error.Code)
}

type failingStore struct{}

func (failingStore) MarkProcessed(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("redis down")
}
func (failingStore) IsProcessed(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}
func (failingStore) Release(context.Context, string) error { return errors.New("redis down") }
func (failingStore) Close() error { return nil }

func TestIdempotency(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	status := http.StatusCreated
	calls := 0
	r := newEngine(RequestID(), Idempotency(store, time.Hour))
	r.POST("/api/v1/tenants", func(c *gin.Context) {
		calls++
		c.Status(status)
	})
	r.GET("/api/v1/tenants", func(c *gin.Context) {
		calls++
		c.Status(http.StatusOK)
	})

	post := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/tenants", nil)
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusCreated, post("k-1").Code)
	dup := post("k-1")
	assert.Equal(t, http.StatusConflict, dup.Code)
	assert.Equal(t, 1, calls)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(dup.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeDuplicateRequest, resp.Error.Code)

	// no key: never de-duplicated
	assert.Equal(t, http.StatusCreated, post("").Code)
	assert.Equal(t, http.StatusCreated, post("").Code)
	assert.Equal(t, 3, calls)

	// rejected requests do not consume the key
	status = http.StatusBadRequest
	assert.Equal(t, http.StatusBadRequest, post("k-2").Code)
	status = http.StatusCreated
	assert.Equal(t, http.StatusCreated, post("k-2").Code)

	// GET ignores the header
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenants", nil)
	req.Header.Set(IdempotencyKeyHeader, "k-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusBadRequest, post(strings.Repeat("k", MaxIdempotencyKeyLength+1)).Code)
}

func TestIdempotency_ConcurrentDuplicatesRunOnce(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	var calls atomic.Int32
	release := make(chan struct{})
	r := newEngine(Idempotency(store, time.Hour))
	r.POST("/api/v1/moneyflows", func(c *gin.Context) {
		calls.Add(1)
		<-release
		c.Status(http.StatusCreated)
	})

	const n = 5
	codes := make(chan int, n)
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/moneyflows", nil)
			req.Header.Set(IdempotencyKeyHeader, "rent-june")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			codes <- w.Code
		}()
	}

	// n-1 duplicates are turned away while the first request is still running
	for range n - 1 {
		assert.Equal(t, http.StatusConflict, <-codes)
	}
	close(release)
	wg.Wait()
	assert.Equal(t, http.StatusCreated, <-codes)
	assert.Equal(t, int32(1), calls.Load())
}

func TestIdempotency_FailedRequestReleasesKey(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	r := newEngine(Idempotency(store, time.Hour))
	r.POST("/api/v1/expenses", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses", nil)
	req.Header.Set(IdempotencyKeyHeader, "invoice-7")
	r.ServeHTTP(httptest.NewRecorder(), req)

	seen, err := store.IsProcessed(context.Background(), "/api/v1/expenses|invoice-7")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestIdempotency_StoreFailureDoesNotBlock(t *testing.T) {
	r := newEngine(Idempotency(failingStore{}, time.Hour))
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusCreated) })

	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.Header.Set(IdempotencyKeyHeader, "same")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	}
}

type observation struct {
	method, route string
	status        int
}

type recordingObserver struct {
	mu  sync.Mutex
	obs []observation
}

func (o *recordingObserver) ObserveHTTP(method, route string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.obs = append(o.obs, observation{method, route, status})
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	observer := &recordingObserver{}
	r := newEngine(Metrics(observer))
	r.GET("/api/v1/properties/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/properties/123", nil))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, []observation{
		{"GET", "/api/v1/properties/:id", http.StatusOK},
		{"GET", "", http.StatusNotFound},
	}, observer.obs)
}

func TestSecure(t *testing.T) {
	r := newEngine(Secure())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestBindingFields(t *testing.T) {
	SetupValidator()

	type pathParams struct {
		ID string `uri:"id" binding:"required,uuid"`
	}
	type body struct {
		Bedrooms int `json:"bedrooms"`
	}

	r := gin.New()
	var got map[string][]string
	var ok bool
	r.POST("/things/:id", func(c *gin.Context) {
		var p pathParams
		if err := c.ShouldBindUri(&p); err != nil {
			got, ok = BindingFields(err)
			return
		}
		var b body
		if err := c.ShouldBindJSON(&b); err != nil {
			got, ok = BindingFields(err)
		}
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/things/not-a-uuid", strings.NewReader(`{}`)))
	require.True(t, ok)
	assert.Equal(t, map[string][]string{"id": {"Invalid UUID format"}}, got)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/things/7f2a3a6c-5a4e-4e55-9b3b-1f8a7c2d9e10", strings.NewReader(`{"bedrooms":"three"}`)))
	require.True(t, ok)
	assert.Equal(t, map[string][]string{"bedrooms": {"Must be a number"}}, got)

	got, ok = BindingFields(errors.New("unexpected EOF"))
	assert.False(t, ok)
	assert.Nil(t, got)
}
