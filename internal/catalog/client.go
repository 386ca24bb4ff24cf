// Package catalog is a read-only client for a TMDB compatible movie catalog.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/myk4040okothogodo/marquee/internal/jsonlog"
)

const (
	DefaultBaseURL  = "https://api.themoviedb.org/3"
	DefaultLanguage = "en-US"
	defaultTimeout  = 30 * time.Second
	userAgent       = "marquee/1.0"
)

// ErrRemoteFetch is matched by every error coming back from an outbound catalog request.
var ErrRemoteFetch = errors.New("remote fetch failed")

// FetchError describes a failed request for a single query.
type FetchError struct {
	Query      string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog: query %q: unexpected status %d", e.Query, e.StatusCode)
	}
	return fmt.Sprintf("catalog: query %q: %v", e.Query, e.Err)
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRemoteFetch}
	}
	return []error{ErrRemoteFetch, e.Err}
}

type Config struct {
	BaseURL  string
	APIKey   string
	Language string
	Timeout  time.Duration
}

// Client issues queries against the catalog. There is no caching and no retry: every call goes to the
// remote service and a failure is returned to the caller as is.
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	logger     *jsonlog.Logger
}

func New(cfg Config, logger *jsonlog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = jsonlog.New(io.Discard, jsonlog.LevelOff)
	}

	return &Client{
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Batch issues one request per query, all of them concurrently, and waits for every one to finish. If any
// request fails the whole batch fails with the first error and no results are returned. On success the
// results array of each response is returned keyed by query name.
//
// Requests are not cancelled when a sibling fails.
func (c *Client) Batch(ctx context.Context, queries ...Query) (map[string]json.RawMessage, error) {
	seen := make(map[string]bool, len(queries))
	for _, q := range queries {
		if q.Name == "" {
			return nil, errors.New("catalog: query name must not be empty")
		}
		if seen[q.Name] {
			return nil, fmt.Errorf("catalog: duplicate query name %q", q.Name)
		}
		seen[q.Name] = true
	}

	results := make([]json.RawMessage, len(queries))

	var g errgroup.Group
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			raw, err := c.results(ctx, q)
			if err != nil {
				return err
			}
			results[i] = raw
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]json.RawMessage, len(queries))
	for i, q := range queries {
		out[q.Name] = results[i]
	}
	return out, nil
}

// MovieLists runs a batch and decodes every result set as movies.
func (c *Client) MovieLists(ctx context.Context, queries ...Query) (map[string][]Movie, error) {
	raw, err := c.Batch(ctx, queries...)
	if err != nil {
		return nil, err
	}
	return decodeLists[Movie](raw)
}

// TVLists runs a batch and decodes every result set as series.
func (c *Client) TVLists(ctx context.Context, queries ...Query) (map[string][]TV, error) {
	raw, err := c.Batch(ctx, queries...)
	if err != nil {
		return nil, err
	}
	return decodeLists[TV](raw)
}

func (c *Client) SearchMovies(ctx context.Context, term string, page int) ([]Movie, error) {
	return search[Movie](ctx, c, SearchMoviesQuery(term, page))
}

func (c *Client) SearchTV(ctx context.Context, term string, page int) ([]TV, error) {
	return search[TV](ctx, c, SearchTVQuery(term, page))
}

func (c *Client) MovieDetail(ctx context.Context, id int64) (*MovieDetail, error) {
	var detail MovieDetail
	if err := c.detail(ctx, "/movie/"+strconv.FormatInt(id, 10), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) TVDetail(ctx context.Context, id int64) (*TVDetail, error) {
	var detail TVDetail
	if err := c.detail(ctx, "/tv/"+strconv.FormatInt(id, 10), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func search[T any](ctx context.Context, c *Client, q Query) ([]T, error) {
	raw, err := c.results(ctx, q)
	if err != nil {
		return nil, err
	}

	items := []T{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &FetchError{Query: q.Name, Err: err}
	}
	return items, nil
}

func decodeLists[T any](raw map[string]json.RawMessage) (map[string][]T, error) {
	lists := make(map[string][]T, len(raw))
	for name, results := range raw {
		items := []T{}
		if err := json.Unmarshal(results, &items); err != nil {
			return nil, &FetchError{Query: name, Err: err}
		}
		lists[name] = items
	}
	return lists, nil
}

func (c *Client) detail(ctx context.Context, path string, dst any) error {
	query := url.Values{}
	query.Set("append_to_response", "videos,images")

	body, err := c.get(ctx, path, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &FetchError{Query: path, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return nil
}

// results fetches a list query and unwraps the results array from its page envelope.
func (c *Client) results(ctx context.Context, q Query) (json.RawMessage, error) {
	body, err := c.get(ctx, q.Name, q.Path, q.values())
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, &FetchError{Query: q.Name, Err: errors.New("response is not valid JSON")}
	}
	results := gjson.GetBytes(body, "results")
	if !results.IsArray() {
		return nil, &FetchError{Query: q.Name, Err: errors.New("response has no results array")}
	}
	return json.RawMessage(results.Raw), nil
}

// get performs one GET request and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, name, path string, query url.Values) ([]byte, error) {
	query.Set("api_key", c.apiKey)
	query.Set("language", c.language)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &FetchError{Query: name, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.PrintError(err, map[string]string{"query": name, "path": path})
		return nil, &FetchError{Query: name, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Query: name, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := &FetchError{Query: name, StatusCode: resp.StatusCode}
		c.logger.PrintError(err, map[string]string{
			"query":  name,
			"path":   path,
			"status": strconv.Itoa(resp.StatusCode),
			"body":   gjson.GetBytes(body, "status_message").String(),
		})
		return nil, err
	}

	return body, nil
}
