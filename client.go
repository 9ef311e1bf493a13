package somfyprotect

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the Somfy Protect (Myfox) API base URL.
	DefaultBaseURL = "https://api.myfox.io/v3"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is sent with every request unless overridden.
	DefaultUserAgent = "Somfy Protect"
)

// Client is a Somfy Protect API client.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
	tokens     *tokenManager

	// Collected from options, consumed by NewClient.
	tokenURL     string
	clientID     string
	clientSecret string
	initialToken *Token
	updaters     []TokenUpdater
	store        TokenStore
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL for the API.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithTokenURL sets a custom OAuth2 token endpoint.
func WithTokenURL(url string) Option {
	return func(c *Client) {
		c.tokenURL = url
	}
}

// WithClientCredentials overrides the embedded application client ID and
// secret.
func WithClientCredentials(clientID, clientSecret string) Option {
	return func(c *Client) {
		c.clientID = clientID
		c.clientSecret = clientSecret
	}
}

// WithHTTPClient sets a custom HTTP client. It is used for both API and
// token endpoint calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP request timeout. Apply it after WithHTTPClient
// to change the timeout of a supplied client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header sent to the API.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithToken resumes from a previously obtained token instead of starting
// with a password grant.
func WithToken(token *Token) Option {
	return func(c *Client) {
		c.initialToken = token
	}
}

// WithTokenUpdater registers a callback that receives every new token.
// It may be given more than once; callbacks run in registration order.
func WithTokenUpdater(updater TokenUpdater) Option {
	return func(c *Client) {
		if updater != nil {
			c.updaters = append(c.updaters, updater)
		}
	}
}

// WithTokenStore loads the initial token from store, unless WithToken is
// also given, and saves every new token to it.
func WithTokenStore(store TokenStore) Option {
	return func(c *Client) {
		c.store = store
	}
}

// NewClient creates a new Somfy Protect API client for the given account.
// No request is made until the first API call.
// Returns ErrMissingUsername if username is empty and no token is supplied.
func NewClient(username, password string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:      DefaultBaseURL,
		userAgent:    DefaultUserAgent,
		tokenURL:     DefaultTokenURL,
		clientID:     defaultClientID,
		clientSecret: defaultClientSecret,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = defaultHTTPClient()
	}

	updaters := c.updaters
	if c.store != nil {
		if c.initialToken == nil {
			if tok, err := c.store.LoadToken(context.Background()); err == nil {
				c.initialToken = tok
			}
		}
		updaters = append([]TokenUpdater{StoreUpdater(c.store, c.logger)}, updaters...)
	}

	if username == "" && c.initialToken == nil {
		return nil, ErrMissingUsername
	}

	c.tokens = &tokenManager{
		config:     oauthConfig(c.tokenURL, c.clientID, c.clientSecret),
		username:   username,
		password:   password,
		httpClient: c.httpClient,
		updater:    chainUpdaters(updaters),
		logger:     c.logger,
		now:        time.Now,
	}
	c.tokens.set(c.initialToken)

	return c, nil
}

// defaultHTTPClient returns the default HTTP client configuration
func defaultHTTPClient() *http.Client {
	return &http.Client{
		Timeout: DefaultTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

func chainUpdaters(updaters []TokenUpdater) TokenUpdater {
	switch len(updaters) {
	case 0:
		return nil
	case 1:
		return updaters[0]
	}
	return func(tok Token) {
		for _, u := range updaters {
			u(tok)
		}
	}
}

// do performs one HTTP request with the given bearer token and returns the
// response body. Non-2xx statuses are converted by handleError.
func (c *Client) do(ctx context.Context, method, path string, body any, accessToken string) ([]byte, error) {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.LogRequest(ctx, method, path)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.LogResponse(ctx, method, path, 0, time.Since(start), err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	c.LogResponse(ctx, method, path, resp.StatusCode, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.handleError(resp.StatusCode, path, respBody)
	}

	return respBody, nil
}

// handleError converts HTTP error responses to appropriate errors.
func (c *Client) handleError(statusCode int, path string, body []byte) error {
	var errResp struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
		Message     string `json:"message"`
	}
	message := string(body)
	if err := json.Unmarshal(body, &errResp); err == nil {
		switch {
		case errResp.Message != "":
			message = errResp.Message
		case errResp.Description != "":
			message = errResp.Description
		case errResp.Error != "":
			message = errResp.Error
		}
	}

	switch statusCode {
	case http.StatusUnauthorized:
		return &AuthError{
			Op:          "request",
			StatusCode:  statusCode,
			Code:        errResp.Error,
			Description: message,
		}
	case http.StatusNotFound:
		return &NotFoundError{Path: path, Message: message}
	default:
		return &APIError{StatusCode: statusCode, Message: message}
	}
}

// doAuthorized performs a request with a valid token. When the API rejects
// the bearer token, the token is refreshed once and the request is retried
// once; the retry's outcome is returned as is.
func (c *Client) doAuthorized(ctx context.Context, method, path string, body any) ([]byte, error) {
	accessToken, err := c.tokens.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	data, err := c.do(ctx, method, path, body, accessToken)
	if err == nil || !isTokenRejected(err) {
		return data, err
	}

	c.logTokenRejected(ctx, method, path)
	accessToken, err = c.tokens.forceRefresh(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, method, path, body, accessToken)
}

// isTokenRejected reports a 401 from a resource endpoint.
func isTokenRejected(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr) && authErr.Op == "request" && authErr.StatusCode == http.StatusUnauthorized
}

// get performs a GET request.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.doAuthorized(ctx, http.MethodGet, path, nil)
}

// put performs a PUT request.
func (c *Client) put(ctx context.Context, path string, body any) ([]byte, error) {
	return c.doAuthorized(ctx, http.MethodPut, path, body)
}
