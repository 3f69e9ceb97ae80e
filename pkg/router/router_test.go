package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func named(name string) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, name)
	}
}

func serve(r *Router, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestMatchWildcardRoute(t *testing.T) {
	tests := []struct {
		path, pattern string
		want          bool
	}{
		{"/api/v1/pipelines/abc", "/api/v1/pipelines/*", true},
		{"/api/v1/pipelines/abc/errors", "/api/v1/pipelines/*/errors", true},
		{"/api/v1/pipelines/abc/errors", "/api/v1/pipelines/*", true},
		{"/api/v1/pipelines/abc/logs", "/api/v1/pipelines/*/errors", false},
		{"/api/v1/pipelines", "/api/v1/pipelines/*", false},
		{"/api/v1/pipelines//errors", "/api/v1/pipelines/*/errors", false},
		{"/api/v1/download/dashboard/x.png", "/api/v1/download/*", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchWildcardRoute(tt.path, tt.pattern), "%s vs %s", tt.path, tt.pattern)
	}
}

func TestRouter_Dispatch(t *testing.T) {
	r := New(nil)
	r.GET("/api/v1/pipelines", named("list"))
	r.POST("/api/v1/pipelines", named("create"))
	r.GET("/api/v1/pipelines/*", named("get"))
	r.GET("/api/v1/pipelines/*/errors", named("errors"))
	r.POST("/api/v1/pipelines/*/retry", named("retry"))
	r.Handle("/swagger/", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "swagger")
	}))

	tests := []struct {
		method, path string
		status       int
		body         string
	}{
		{http.MethodGet, "/api/v1/pipelines", http.StatusOK, "list"},
		{http.MethodPost, "/api/v1/pipelines", http.StatusOK, "create"},
		{http.MethodGet, "/api/v1/pipelines/42", http.StatusOK, "get"},
		{http.MethodGet, "/api/v1/pipelines/42/errors", http.StatusOK, "errors"},
		{http.MethodPost, "/api/v1/pipelines/42/retry", http.StatusOK, "retry"},
		{http.MethodGet, "/swagger/index.html", http.StatusOK, "swagger"},
		{http.MethodDelete, "/api/v1/pipelines", http.StatusMethodNotAllowed, ""},
		{http.MethodDelete, "/api/v1/pipelines/42", http.StatusMethodNotAllowed, ""},
		// trailing wildcards span segments, so the generic route answers
		{http.MethodGet, "/api/v1/pipelines/42/retry", http.StatusOK, "get"},
		{http.MethodGet, "/nope", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		rec := serve(r, tt.method, tt.path)
		assert.Equal(t, tt.status, rec.Code, "%s %s", tt.method, tt.path)
		if tt.body != "" {
			assert.Equal(t, tt.body, rec.Body.String(), "%s %s", tt.method, tt.path)
		}
	}
}

func TestRouter_Registration(t *testing.T) {
	r := New(nil)
	r.PUT("/a", named("put"))
	r.PATCH("/a", named("patch"))
	r.DELETE("/a", named("delete"))

	assert.Len(t, r.Routes(), 3)
	assert.True(t, r.Paths()["/a"])
	assert.Equal(t, "patch", serve(r, http.MethodPatch, "/a").Body.String())
}
