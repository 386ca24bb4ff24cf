package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(results string) string {
	return fmt.Sprintf(`{"page":1,"total_results":1,"total_pages":1,"results":%s}`, results)
}

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"status_message":"Invalid API key"}`)
			return
		}

		switch r.URL.Path {
		case "/trending/movie/week":
			fmt.Fprint(w, page(`[{"id":1,"title":"Dune","release_date":"2021-10-22","vote_average":7.8}]`))
		case "/movie/now_playing":
			fmt.Fprint(w, page(`[{"id":2,"title":"Heat","release_date":"1995-12-15","vote_average":8.2}]`))
		case "/movie/upcoming":
			fmt.Fprint(w, page(`[]`))
		case "/trending/tv/week":
			fmt.Fprint(w, page(`[{"id":10,"name":"Severance","first_air_date":"2022-02-17","vote_average":8.4}]`))
		case "/tv/airing_today":
			fmt.Fprint(w, page(`[]`))
		case "/tv/top_rated":
			fmt.Fprint(w, page(`[{"id":11,"name":"The Wire","vote_average":8.6}]`))
		case "/search/movie":
			fmt.Fprint(w, page(fmt.Sprintf(`[{"id":3,"title":%q}]`, r.URL.Query().Get("query"))))
		case "/movie/1":
			fmt.Fprint(w, `{"id":1,"title":"Dune","tagline":"Beyond fear, destiny awaits.","runtime":155,
				"genres":[{"id":878,"name":"Science Fiction"},{"id":12,"name":"Adventure"}],
				"videos":{"results":[{"key":"abc","site":"YouTube","type":"Trailer"}]}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"status_message":"The resource you requested could not be found."}`)
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd, err := newRootCmd()
	require.NoError(t, err)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--no-color"))

	err = cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestMoviesCommand(t *testing.T) {
	srv := newCatalogServer(t)

	out, _, err := run(t, "movies", "--base-url", srv.URL, "--api-key", "secret")
	require.NoError(t, err)

	assert.Contains(t, out, "Trending")
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "7.8/10")
	assert.Contains(t, out, "Now Playing")
	assert.Contains(t, out, "Heat")
	assert.Contains(t, out, "Coming Soon")

	assert.Less(t, strings.Index(out, "Trending"), strings.Index(out, "Now Playing"))
	assert.Less(t, strings.Index(out, "Now Playing"), strings.Index(out, "Coming Soon"))
}

func TestMoviesCommandJSON(t *testing.T) {
	srv := newCatalogServer(t)

	out, _, err := run(t, "movies", "-o", "json", "--base-url", srv.URL, "--api-key", "secret")
	require.NoError(t, err)

	var lists map[string][]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &lists))
	assert.Len(t, lists, 3)
	assert.Equal(t, "Dune", lists["trending"][0]["title"])
	assert.Empty(t, lists["upcoming"])
}

func TestTVCommand(t *testing.T) {
	srv := newCatalogServer(t)

	out, _, err := run(t, "tv", "--base-url", srv.URL, "--api-key", "secret")
	require.NoError(t, err)

	assert.Contains(t, out, "Severance")
	assert.Contains(t, out, "Airing Today")
	assert.Contains(t, out, "The Wire")
}

func TestSearchCommand(t *testing.T) {
	srv := newCatalogServer(t)

	out, _, err := run(t, "search", "blade runner", "--base-url", srv.URL, "--api-key", "secret")
	require.NoError(t, err)

	assert.Contains(t, out, `Results for "blade runner"`)
	assert.Contains(t, out, "blade runner")
}

func TestDetailCommand(t *testing.T) {
	srv := newCatalogServer(t)

	out, _, err := run(t, "detail", "1", "--base-url", srv.URL, "--api-key", "secret")
	require.NoError(t, err)

	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "Beyond fear, destiny awaits.")
	assert.Contains(t, out, "155 min")
	assert.Contains(t, out, "Science Fiction, Adventure")
	assert.Contains(t, out, "Videos:")

	_, _, err = run(t, "detail", "0", "--base-url", srv.URL, "--api-key", "secret")
	assert.EqualError(t, err, `invalid id "0"`)

	_, _, err = run(t, "detail", "99", "--base-url", srv.URL, "--api-key", "secret")
	assert.Error(t, err)
}

func TestBatchFailureFailsCommand(t *testing.T) {
	srv := newCatalogServer(t)

	out, stderr, err := run(t, "movies", "--verbose", "--base-url", srv.URL, "--api-key", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 401")
	assert.Empty(t, out)
	assert.Contains(t, stderr, "Invalid API key")
}

func TestOptionValidation(t *testing.T) {
	t.Setenv("MARQUEE_API_KEY", "")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing api key", []string{"movies"}, "an API key is required"},
		{"bad output", []string{"movies", "--api-key", "k", "-o", "xml"}, `unknown output format "xml"`},
		{"bad page", []string{"movies", "--api-key", "k", "--page", "0"}, "page must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOptionsFromEnvironmentAndConfig(t *testing.T) {
	srv := newCatalogServer(t)

	t.Run("environment", func(t *testing.T) {
		t.Setenv("MARQUEE_API_KEY", "secret")
		t.Setenv("MARQUEE_BASE_URL", srv.URL)

		out, _, err := run(t, "tv")
		require.NoError(t, err)
		assert.Contains(t, out, "Severance")
	})

	t.Run("config file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "catalog.yaml")
		content := fmt.Sprintf("api-key: secret\nbase-url: %s\noutput: json\n", srv.URL)
		require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

		out, _, err := run(t, "tv", "--config", file)
		require.NoError(t, err)

		var lists map[string][]map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &lists))
		assert.Equal(t, "Severance", lists["trending"][0]["name"])
	})
}

func TestNoColorStaysWithTheCommand(t *testing.T) {
	srv := newCatalogServer(t)
	before := color.NoColor

	out, _, err := run(t, "tv", "--base-url", srv.URL, "--api-key", "secret")
	require.NoError(t, err)
	assert.NotContains(t, out, "\x1b[")
	assert.Equal(t, before, color.NoColor)

	var buf bytes.Buffer
	p := newPrinter(&buf, false)
	p.heading.EnableColor()
	require.NoError(t, p.shows("Trending", nil))
	assert.Contains(t, buf.String(), "\x1b[")
}
