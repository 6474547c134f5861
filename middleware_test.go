package scssgo

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewarePassthrough(t *testing.T) {
	mockFS := fstest.MapFS{
		"style.scss": &fstest.MapFile{Data: []byte("body { color: red; }")},
	}

	middleware := NewMiddleware("/assets/css", mockFS)

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusTeapot)
	})

	handler := middleware(next)

	req := httptest.NewRequest(http.MethodGet, "/assets/css/style.css", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestMiddlewareCompiles(t *testing.T) {
	mockFS := fstest.MapFS{
		"style.scss": &fstest.MapFile{Data: []byte("$c: red;\nbody { color: $c; }")},
	}

	middleware := NewMiddleware("/assets/css", mockFS)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be called for a matching .scss request")
	})
	handler := middleware(next)

	req := httptest.NewRequest(http.MethodGet, "/assets/css/style.scss", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "color: red;")
}
