// Package http provides the HTTP server and routing for the item server.
package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRouter_RegisterHandler(t *testing.T) {
	t.Parallel()

	router := NewRouter()

	handlerCalled := false
	router.Handle("/items", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if !handlerCalled {
		t.Error("Registered handler was not called")
	}
	if w.Code != http.StatusOK {
		t.Errorf("Status = %v, want 200", w.Code)
	}
}

func TestRouter_MultipleHandlers(t *testing.T) {
	t.Parallel()

	router := NewRouter()

	healthCalled := false
	itemsCalled := false

	router.Handle("GET /health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		healthCalled = true
		w.WriteHeader(http.StatusOK)
	}))
	router.Handle("/items", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		itemsCalled = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	if !healthCalled {
		t.Error("Health handler was not called for /health")
	}
	if itemsCalled {
		t.Error("Items handler should not be called for /health")
	}

	healthCalled = false

	req = httptest.NewRequest(http.MethodDelete, "/items", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	if healthCalled {
		t.Error("Health handler should not be called for /items")
	}
	if !itemsCalled {
		t.Error("Items handler was not called for /items")
	}
}

func TestRouter_NotFound(t *testing.T) {
	t.Parallel()

	router := NewRouter()
	router.Handle("/items", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/not-exists", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Unmatched path status = %v, want 404", w.Code)
	}
}

func TestRouter_MethodPatternIsVerbScoped(t *testing.T) {
	t.Parallel()

	router := NewRouter()
	router.Handle("GET /health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST to GET-only pattern status = %v, want 405", w.Code)
	}
}

func TestRouter_MiddlewareChain(t *testing.T) {
	t.Parallel()

	router := NewRouter()

	order := []string{}

	middleware1 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "m1-before")
			next.ServeHTTP(w, r)
			order = append(order, "m1-after")
		})
	}
	middleware2 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "m2-before")
			next.ServeHTTP(w, r)
			order = append(order, "m2-after")
		})
	}

	router.Use(middleware1, middleware2)
	router.Handle("/items", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	want := []string{"m1-before", "m2-before", "handler", "m2-after", "m1-after"}
	if len(order) != len(want) {
		t.Fatalf("Middleware order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("Middleware order = %v, want %v", order, want)
		}
	}
}

func TestRouter_MiddlewareOnlyWrapsSubsequentRoutes(t *testing.T) {
	t.Parallel()

	router := NewRouter()

	mwCalled := false
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mwCalled = true
			next.ServeHTTP(w, r)
		})
	}

	router.Handle("/before", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	router.Use(mw)
	router.Handle("/after", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/before", nil))
	if mwCalled {
		t.Error("Middleware should not wrap routes registered before Use")
	}

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/after", nil))
	if !mwCalled {
		t.Error("Middleware should wrap routes registered after Use")
	}
}
