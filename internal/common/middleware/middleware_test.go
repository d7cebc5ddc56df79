package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tansive/walleterrors/internal/common/logtrace"
)

func TestRequestLogger(t *testing.T) {
	var seen string
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logtrace.RequestIdFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("generates id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		id := rec.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, seen)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("reuses valid incoming id", func(t *testing.T) {
		incoming := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		req.Header.Set(RequestIDHeader, incoming)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, incoming, rec.Header().Get(RequestIDHeader))
		assert.Equal(t, incoming, seen)
	})

	t.Run("replaces malformed incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		req.Header.Set(RequestIDHeader, "not-a-uuid")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
	})
}

func TestPanicHandler(t *testing.T) {
	h := PanicHandler(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "unable to process request")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logtrace.WithRequestId(req.Context(), "req-42"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), "request id: req-42")
}

func TestSetTimeout(t *testing.T) {
	t.Run("fast handler", func(t *testing.T) {
		h := SetTimeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, "1s", rec.Header().Get(TimeoutHeader))
	})

	t.Run("slow handler", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)
		h := SetTimeout(10 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
			<-release
			w.WriteHeader(http.StatusOK)
		}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusRequestTimeout, rec.Code)
	})

	t.Run("panicking handler", func(t *testing.T) {
		h := SetTimeout(time.Second)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
