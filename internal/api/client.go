// Package api is the HTTP client for the genre and cluster endpoints.
//
// The service is a black box: GET /genres returns {"genres": [...]} and
// GET /cluster?genre=&rating= returns {"clusters": [...]}. Nothing here retries;
// every failure is returned to the caller to surface once.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/abelbrown/cinecluster/internal/cluster"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error: %d %s", e.Code, e.Status)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// Client talks to the clustering service.
type Client struct {
	base    *url.URL
	client  *http.Client
	limiter *rate.Limiter
	flight  singleflight.Group
}

// NewClient creates a Client for baseURL with the given request timeout.
// rps bounds outgoing requests per second; rps <= 0 disables the limit.
func NewClient(baseURL string, timeout time.Duration, rps float64) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}

	return &Client{
		base:    u,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, 1),
	}, nil
}

// BaseURL returns the service root the client was built with.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// ClusterURL builds the request URL for a cluster query.
func (c *Client) ClusterURL(genre, rating string) string {
	q := url.Values{}
	q.Set("genre", genre)
	q.Set("rating", rating)
	return c.endpoint("/cluster", q)
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := *c.base
	u.Path = c.base.Path + path
	if q != nil {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// Genres fetches the genre list in server order.
// A body without a "genres" field yields an empty list, not an error.
func (c *Client) Genres(ctx context.Context) ([]string, error) {
	v, err, _ := c.flight.Do("genres", func() (any, error) {
		var body struct {
			Genres []string `json:"genres"`
		}
		if err := c.getJSON(ctx, c.endpoint("/genres", nil), &body); err != nil {
			return nil, err
		}
		if body.Genres == nil {
			return []string{}, nil
		}
		return body.Genres, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// Cluster requests clusters for genre and minimum rating. Both are passed
// through verbatim as query parameters. Identical concurrent calls share one
// request and therefore one *cluster.Result.
func (c *Client) Cluster(ctx context.Context, genre, rating string) (*cluster.Result, error) {
	target := c.ClusterURL(genre, rating)
	v, err, _ := c.flight.Do(target, func() (any, error) {
		var res cluster.Result
		if err := c.getJSON(ctx, target, &res); err != nil {
			return nil, err
		}
		return &res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*cluster.Result), nil
}

// getJSON performs one GET and decodes a 2xx body into out.
func (c *Client) getJSON(ctx context.Context, target string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "cinecluster/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return &StatusError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
