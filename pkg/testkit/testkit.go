// Package testkit provides test doubles for the HTTP layer.
//
// MockTransport implements http.RoundTripper: it matches outgoing requests
// against registered stubs and returns synthetic responses, so screen and
// gateway tests never touch the network.
//
//	mt := testkit.Install(t)
//	mt.Stub("GET", "/orders", 200, []models.Order{...})
//	// ... exercise the code under test ...
//	require.Equal(t, 1, mt.Calls("GET", "/orders"))
package testkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	gohttp "net/http"
	"strings"
	"sync"
	"testing"

	"github.com/marespinozac/comanda/pkg/http"
)

// MockTransport intercepts every request on the shared client.
type MockTransport struct {
	mu    sync.Mutex
	stubs []*stub
	log   []Call
}

type stub struct {
	method string
	path   string // matched against the request path, prefix-style
	status int
	body   []byte
	calls  int
}

// Call records one intercepted request.
type Call struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

// Install swaps the mock onto the shared client and restores the real
// transport when the test finishes.
func Install(t *testing.T) *MockTransport {
	t.Helper()
	mt := &MockTransport{}
	http.DefaultClient.Transport = mt
	t.Cleanup(http.ResetTransport)
	return mt
}

// Stub registers a synthetic response. body is marshalled to JSON; pass nil
// for an empty body. Stubs are matched in registration order; the request
// path must start with path after the host.
func (mt *MockTransport) Stub(method, path string, status int, body any) {
	var raw []byte
	if body != nil {
		raw, _ = json.Marshal(body)
	}
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.stubs = append(mt.stubs, &stub{method: method, path: path, status: status, body: raw})
}

// RoundTrip implements http.RoundTripper.
func (mt *MockTransport) RoundTrip(req *gohttp.Request) (*gohttp.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		req.Body.Close()
	}

	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.log = append(mt.log, Call{
		Method: req.Method,
		Path:   req.URL.Path,
		Query:  req.URL.RawQuery,
		Body:   body,
	})

	for _, s := range mt.stubs {
		if s.method != req.Method {
			continue
		}
		if !strings.Contains(req.URL.Path, s.path) {
			continue
		}
		s.calls++
		return synthetic(req, s.status, s.body), nil
	}

	// No stub: a generic 404 keeps the failure visible without panicking.
	return synthetic(req, gohttp.StatusNotFound, []byte(`{"error":"no mock configured"}`)), nil
}

// Calls counts intercepted requests matching method and a path fragment.
func (mt *MockTransport) Calls(method, path string) int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	n := 0
	for _, c := range mt.log {
		if c.Method == method && strings.Contains(c.Path, path) {
			n++
		}
	}
	return n
}

// Total counts every intercepted request.
func (mt *MockTransport) Total() int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return len(mt.log)
}

// LastBody decodes the most recent request body matching method+path into dest.
func (mt *MockTransport) LastBody(method, path string, dest any) error {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	for i := len(mt.log) - 1; i >= 0; i-- {
		c := mt.log[i]
		if c.Method == method && strings.Contains(c.Path, path) {
			return json.Unmarshal(c.Body, dest)
		}
	}
	return fmt.Errorf("testkit: no recorded call %s %s", method, path)
}

func synthetic(req *gohttp.Request, status int, body []byte) *gohttp.Response {
	header := make(gohttp.Header)
	header.Set("Content-Type", "application/json")
	return &gohttp.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, gohttp.StatusText(status)),
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Request:    req,
	}
}
