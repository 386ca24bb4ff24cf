package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/myk4040okothogodo/marquee/internal/data"
	"github.com/myk4040okothogodo/marquee/internal/jsonlog"
)

// newTestApplication returns an application backed by a fresh in-memory store, with logging and rate
// limiting switched off.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	var cfg config
	cfg.env = "testing"

	return &application{
		config: cfg,
		logger: jsonlog.New(io.Discard, jsonlog.LevelOff),
		models: data.NewMemoryModels(),
	}
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	t.Helper()

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	return &testServer{ts}
}

// do sends a request with an optional raw body and returns the status code, headers and body.
func (ts *testServer) do(t *testing.T, method, path, body string) (int, http.Header, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	client := ts.Client()
	// Don't follow redirects, so that a trailing-slash redirect shows up as such.
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	rs, err := client.Do(req)
	require.NoError(t, err)
	defer rs.Body.Close()

	b, err := io.ReadAll(rs.Body)
	require.NoError(t, err)

	return rs.StatusCode, rs.Header, b
}

func decodeJSON[T any](t *testing.T, b []byte) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}
