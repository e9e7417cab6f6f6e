package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/nhle/unsubmgr/internal/logger"
	"github.com/nhle/unsubmgr/internal/model"
)

// Endpoint paths relative to the base URL.
const (
	pathCandidates   = "/emails/candidates"
	pathUnsubscribed = "/emails/unsubscribed"
	pathStats        = "/emails/stats"
)

// maxErrorBody bounds how many cells of an error response are kept for
// diagnostics.
const maxErrorBody = 512

// Result carries either a value or the error that prevented it. When Err is
// set, Value holds the operation's safe default, so callers that ignore Err
// still get something renderable.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Client is a thin HTTP client for the unsubscribe backend. It does not
// retry and sets no timeout; the caller's context is the only way to
// abandon a request.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithToken sends the token as a Bearer Authorization header.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithLogger sets the logger used for failure diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.log = logger.OrNop(l)
	}
}

// NewClient creates a client rooted at baseURL
// (e.g., http://localhost:8000).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(zap.String("api_base", c.baseURL))
	return c
}

// BaseURL returns the root URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WithBaseURL returns a copy of the client that targets a different origin
// but shares the transport, token and logger.
func (c *Client) WithBaseURL(baseURL string) *Client {
	clone := *c
	clone.baseURL = strings.TrimRight(baseURL, "/")
	clone.log = c.log.With(zap.String("api_base", clone.baseURL))
	return &clone
}

// Candidates fetches the emails proposed for unsubscribing.
func (c *Client) Candidates(ctx context.Context) Result[[]model.EmailRecord] {
	return c.fetchEmails(ctx, pathCandidates, "fetching candidates")
}

// Unsubscribed fetches the emails already unsubscribed from.
func (c *Client) Unsubscribed(ctx context.Context) Result[[]model.EmailRecord] {
	return c.fetchEmails(ctx, pathUnsubscribed, "fetching unsubscribed emails")
}

// Unsubscribe asks the backend to unsubscribe from the email's sender.
func (c *Client) Unsubscribe(ctx context.Context, id string) Result[model.UnsubscribeResult] {
	var res model.UnsubscribeResult
	err := c.postAction(ctx, id, "unsubscribe", &res)
	if err != nil {
		c.log.Error("error unsubscribing", zap.String("email_id", id), zap.Error(err))
		return Result[model.UnsubscribeResult]{
			Value: model.UnsubscribeResult{Success: false, Message: failureMessage(err)},
			Err:   err,
		}
	}
	return Result[model.UnsubscribeResult]{Value: res}
}

// Skip marks the email as one the user decided to keep.
func (c *Client) Skip(ctx context.Context, id string) Result[model.SkipResult] {
	var res model.SkipResult
	err := c.postAction(ctx, id, "skip", &res)
	if err != nil {
		c.log.Error("error skipping email", zap.String("email_id", id), zap.Error(err))
		return Result[model.SkipResult]{
			Value: model.SkipResult{Status: model.SkipStatusError},
			Err:   err,
		}
	}
	return Result[model.SkipResult]{Value: res}
}

// Stats fetches the backend's processing counters.
func (c *Client) Stats(ctx context.Context) Result[model.Stats] {
	var stats model.Stats
	if err := c.do(ctx, http.MethodGet, pathStats, &stats); err != nil {
		c.log.Error("error fetching stats", zap.Error(err))
		return Result[model.Stats]{Value: model.Stats{}, Err: err}
	}
	return Result[model.Stats]{Value: stats}
}

// FetchCandidates returns the candidate emails, or an empty slice when the
// request fails for any reason.
func (c *Client) FetchCandidates(ctx context.Context) []model.EmailRecord {
	return c.Candidates(ctx).Value
}

// FetchUnsubscribed returns the unsubscribed emails, or an empty slice when
// the request fails for any reason.
func (c *Client) FetchUnsubscribed(ctx context.Context) []model.EmailRecord {
	return c.Unsubscribed(ctx).Value
}

// UnsubscribeEmail returns the backend's result, or a failed result whose
// message describes what went wrong.
func (c *Client) UnsubscribeEmail(ctx context.Context, id string) model.UnsubscribeResult {
	return c.Unsubscribe(ctx, id).Value
}

// SkipEmail returns the backend's result, or {status: "error"} on failure.
func (c *Client) SkipEmail(ctx context.Context, id string) model.SkipResult {
	return c.Skip(ctx, id).Value
}

// GetStats returns the backend's counters, or all zeros on failure.
func (c *Client) GetStats(ctx context.Context) model.Stats {
	return c.Stats(ctx).Value
}

func (c *Client) fetchEmails(ctx context.Context, path, what string) Result[[]model.EmailRecord] {
	var records []model.EmailRecord
	if err := c.do(ctx, http.MethodGet, path, &records); err != nil {
		c.log.Error("error "+what, zap.Error(err))
		return Result[[]model.EmailRecord]{Value: []model.EmailRecord{}, Err: err}
	}
	if records == nil {
		records = []model.EmailRecord{}
	}
	return Result[[]model.EmailRecord]{Value: records}
}

func (c *Client) postAction(ctx context.Context, id, action string, result any) error {
	if id == "" {
		return fmt.Errorf("%s: %w", action, ErrEmptyID)
	}
	path := "/emails/" + url.PathEscape(id) + "/" + action
	return c.do(ctx, http.MethodPost, path, result)
}

// do sends a request and decodes a 2xx JSON body into result. Every
// failure comes back as a *RequestError.
func (c *Client) do(ctx context.Context, method, path string, result any) error {
	requestID := uuid.NewString()
	log := c.log.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)

	fail := func(kind FailureKind, status int, err error) error {
		return &RequestError{Kind: kind, Method: method, Path: path, Status: status, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fail(NetworkFailure, 0, fmt.Errorf("creating request: %w", err))
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.Debug("sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(NetworkFailure, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(NetworkFailure, resp.StatusCode, fmt.Errorf("reading response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fail(NetworkFailure, resp.StatusCode, fmt.Errorf("HTTP error: %s", truncate(body)))
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fail(ParseFailure, resp.StatusCode, err)
	}

	log.Debug("request completed", zap.Int("status", resp.StatusCode))
	return nil
}

// failureMessage turns an error into the diagnostic shown to the user.
func failureMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Network error"
}

func truncate(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "empty body"
	}
	return runewidth.Truncate(s, maxErrorBody, "...")
}
