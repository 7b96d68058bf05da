package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

// FakeBackend is a scriptable NS Gifts API for integration and BDD
// tests. Paths are stubbed with static JSON or custom handlers; every
// request is counted per path.
type FakeBackend struct {
	mu       sync.Mutex
	requests map[string]int
	handlers map[string]http.HandlerFunc
	Server   *httptest.Server
}

// NewFakeBackend starts a fake API server. Callers own shutdown via
// Close unless they pass a testing.TB cleanup themselves.
func NewFakeBackend() *FakeBackend {
	f := &FakeBackend{
		requests: make(map[string]int),
		handlers: make(map[string]http.HandlerFunc),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.dispatch))
	return f
}

func (f *FakeBackend) dispatch(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests[r.URL.Path]++
	handler := f.handlers[r.URL.Path]
	f.mu.Unlock()

	if handler == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	handler(w, r)
}

// URL returns the backend base URL
func (f *FakeBackend) URL() string {
	return f.Server.URL
}

// Close shuts the backend down
func (f *FakeBackend) Close() {
	f.Server.Close()
}

// Handle registers a custom handler for a path
func (f *FakeBackend) Handle(path string, handler http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[path] = handler
}

// StubJSON registers a handler answering with a fixed status and JSON body
func (f *FakeBackend) StubJSON(path string, status int, body any) {
	f.Handle(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})
}

// StubLogin registers a login endpoint issuing the given token
func (f *FakeBackend) StubLogin(token string, validThru int64) {
	f.StubJSON("/api/v1/get_token", http.StatusOK, map[string]any{
		"access_token": token,
		"valid_thru":   validThru,
		"user_id":      1,
	})
}

// Requests returns how many times a path was hit
func (f *FakeBackend) Requests(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[path]
}
