package somfyprotect

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// WithLogger configures a structured logger for the client.
// When set, the client logs API requests, responses and token lifecycle
// events. Tokens and passwords are never logged.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	client, _ := somfyprotect.NewClient(user, pass, somfyprotect.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// LoggingTransport wraps an http.RoundTripper and logs requests/responses.
type LoggingTransport struct {
	Base   http.RoundTripper
	Logger *slog.Logger
}

// RoundTrip implements http.RoundTripper with logging.
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	start := time.Now()

	if t.Logger != nil {
		t.Logger.LogAttrs(req.Context(), slog.LevelDebug, "http_request",
			slog.String("method", req.Method),
			slog.String("url", req.URL.Redacted()),
		)
	}

	resp, err := base.RoundTrip(req)
	duration := time.Since(start)

	if t.Logger != nil {
		if err != nil {
			t.Logger.LogAttrs(req.Context(), slog.LevelError, "http_error",
				slog.String("method", req.Method),
				slog.String("url", req.URL.Redacted()),
				slog.Duration("duration", duration),
				slog.String("error", err.Error()),
			)
		} else {
			t.Logger.LogAttrs(req.Context(), statusLevel(resp.StatusCode, nil), "http_response",
				slog.String("method", req.Method),
				slog.String("url", req.URL.Redacted()),
				slog.Int("status", resp.StatusCode),
				slog.Duration("duration", duration),
			)
		}
	}

	return resp, err
}

func statusLevel(statusCode int, err error) slog.Level {
	switch {
	case statusCode >= 500 || err != nil:
		return slog.LevelError
	case statusCode >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelDebug
	}
}

// LogRequest logs an API request. This is the low-level logging method
// used internally and can be used for custom request logging.
func (c *Client) LogRequest(ctx context.Context, method, path string) {
	if c.logger == nil {
		return
	}
	c.logger.LogAttrs(ctx, slog.LevelDebug, "api_request",
		slog.String("method", method),
		slog.String("path", path),
	)
}

// LogResponse logs an API response. This is the low-level logging method
// used internally and can be used for custom response logging.
func (c *Client) LogResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration, err error) {
	if c.logger == nil {
		return
	}

	attrs := []slog.Attr{
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", statusCode),
		slog.Duration("duration", duration),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	c.logger.LogAttrs(ctx, statusLevel(statusCode, err), "api_response", attrs...)
}

func (c *Client) logTokenRejected(ctx context.Context, method, path string) {
	if c.logger == nil {
		return
	}
	c.logger.LogAttrs(ctx, slog.LevelInfo, "token_rejected",
		slog.String("method", method),
		slog.String("path", path),
	)
}

// logTokenEvent records a token lifecycle transition.
func logTokenEvent(ctx context.Context, logger *slog.Logger, event string, tok *Token, err error) {
	if logger == nil {
		return
	}

	if err != nil {
		logger.LogAttrs(ctx, slog.LevelWarn, event, slog.String("error", err.Error()))
		return
	}

	attrs := []slog.Attr{slog.Time("expires_at", tok.ExpiresAt)}
	if tok.TokenType != "" {
		attrs = append(attrs, slog.String("token_type", tok.TokenType))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, event, attrs...)
}

// NewLoggingClient creates a client with request/response logging enabled
// at the transport level, which also covers token endpoint calls.
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	client, err := somfyprotect.NewLoggingClient(user, pass, logger)
func NewLoggingClient(username, password string, logger *slog.Logger, opts ...Option) (*Client, error) {
	transport := &LoggingTransport{
		Base: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
		},
		Logger: logger,
	}

	httpClient := &http.Client{
		Timeout:   DefaultTimeout,
		Transport: transport,
	}

	allOpts := append([]Option{WithHTTPClient(httpClient), WithLogger(logger)}, opts...)

	return NewClient(username, password, allOpts...)
}
