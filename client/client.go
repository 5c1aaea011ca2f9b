package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"civictrack/utils"
)

const (
	apiPath          = "/api"
	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 10 << 20

	msgRequestFailed = "Request failed"
	msgSubmitFailed  = "Submit failed"
)

// Client talks to the CivicTrack REST API under <origin>/api
type Client struct {
	origin     string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the API served at origin, e.g. http://localhost:5000
func New(origin string, opts ...Option) *Client {
	c := &Client{
		origin:     strings.TrimRight(strings.TrimSpace(origin), "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Origin returns the API origin the client was created with
func (c *Client) Origin() string {
	return c.origin
}

// request describes one API call
type request struct {
	method      string
	path        string // below /api
	sess        *Session
	auth        bool
	body        io.Reader
	contentType string
	failMessage string
}

func (c *Client) jsonRequest(method, path string, sess *Session, auth bool, payload interface{}) (request, error) {
	req := request{method: method, path: path, sess: sess, auth: auth}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return req, fmt.Errorf("encode request: %w", err)
		}
		req.body = bytes.NewReader(data)
		req.contentType = "application/json"
	}
	return req, nil
}

// do performs the call and decodes a 2xx JSON body into out (if non-nil)
func (c *Client) do(ctx context.Context, r request, out interface{}) error {
	if r.auth && !r.sess.LoggedIn() {
		return errNotLoggedIn()
	}
	if r.failMessage == "" {
		r.failMessage = msgRequestFailed
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.origin+apiPath+r.path, r.body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "Network error: " + err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.sess.LoggedIn() {
		req.Header.Set("Authorization", "Bearer "+r.sess.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", "method", r.method, "path", r.path, "error", err)
		return &Error{Kind: KindNetwork, Message: "Network error: " + err.Error(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "Network error: " + err.Error(), Err: err}
	}
	c.logger.Debug("api request",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return serverError(resp.StatusCode, data, r.failMessage)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindServer, Message: "Invalid response from server", StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

// serverError uses the server's message verbatim when it sent one
func serverError(status int, body []byte, fallback string) *Error {
	var payload struct {
		Message string `json:"message"`
	}
	msg := fallback
	if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		msg = payload.Message
	}
	return &Error{Kind: KindServer, Message: msg, StatusCode: status}
}

// validate runs struct validation and converts failures into KindValidation
func validate(v interface{}) error {
	err := utils.Validate.Struct(v)
	if err == nil {
		return nil
	}
	fields := utils.FieldErrors(err)
	if fields == nil {
		return &Error{Kind: KindValidation, Message: err.Error(), Err: err}
	}
	return &Error{Kind: KindValidation, Message: utils.FormatFieldErrors(fields), Fields: fields}
}
