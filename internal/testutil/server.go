package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Reply is a scripted response for one route.
type Reply struct {
	Status int
	Body   any
	// Raw, when set, is written verbatim instead of encoding Body.
	Raw string
}

// Request records a call received by the fake API.
type Request struct {
	Method  string
	Path    string
	Body    []byte
	Headers http.Header
}

// FakeAPI is a scriptable stand-in for the project-management server.
type FakeAPI struct {
	BaseURL string

	server   *httptest.Server
	mu       sync.Mutex
	replies  map[string]Reply
	requests []Request
	hold     chan struct{}
}

// StartFakeAPI launches a fake API that answers unscripted routes with 404.
func StartFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()
	fake := &FakeAPI{replies: map[string]Reply{}}
	fake.server = httptest.NewServer(http.HandlerFunc(fake.handle))
	fake.BaseURL = fake.server.URL
	t.Cleanup(fake.server.Close)
	return fake
}

// Reply scripts the response for method and path.
func (f *FakeAPI) Reply(method, path string, status int, body any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[method+" "+path] = Reply{Status: status, Body: body}
}

// ReplyRaw scripts a verbatim response body.
func (f *FakeAPI) ReplyRaw(method, path string, status int, raw string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[method+" "+path] = Reply{Status: status, Raw: raw}
}

// Hold blocks every request until the returned release func is called.
func (f *FakeAPI) Hold() func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.hold = ch
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// Requests returns the calls received so far.
func (f *FakeAPI) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Request, len(f.requests))
	copy(out, f.requests)
	return out
}

// RequestCount returns the number of calls received so far.
func (f *FakeAPI) RequestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *FakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, Request{
		Method:  r.Method,
		Path:    r.URL.Path,
		Body:    body,
		Headers: r.Header.Clone(),
	})
	reply, ok := f.replies[r.Method+" "+r.URL.Path]
	hold := f.hold
	f.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-r.Context().Done():
			return
		}
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
		return
	}
	if reply.Status == 0 {
		reply.Status = http.StatusOK
	}
	if reply.Raw != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(reply.Status)
		_, _ = io.WriteString(w, reply.Raw)
		return
	}
	writeJSON(w, reply.Status, reply.Body)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
