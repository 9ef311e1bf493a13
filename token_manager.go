package somfyprotect

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// tokenManager owns the OAuth2 credential of a Client.
//
// States: no token, valid, expired. A missing token is obtained with the
// password grant and an expired one is refreshed; failures leave the state
// unchanged. mu serializes every check-then-renew sequence.
type tokenManager struct {
	config     *oauth2.Config
	username   string
	password   string
	httpClient *http.Client
	updater    TokenUpdater
	logger     *slog.Logger
	now        func() time.Time

	mu    sync.Mutex
	token *Token
}

// accessToken returns a usable access token, obtaining or refreshing the
// token first when needed. A valid token is returned as is.
func (m *tokenManager) accessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.token.IsExpired(m.now()) {
		return m.token.AccessToken, nil
	}
	tok, err := m.renewLocked(ctx)
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// forceRefresh replaces a token the API rejected. rejected is the access
// token that was sent; if another caller already replaced it, the current
// token is returned without a second refresh.
func (m *tokenManager) forceRefresh(ctx context.Context, rejected string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != nil && m.token.AccessToken != rejected && !m.token.IsExpired(m.now()) {
		return m.token.AccessToken, nil
	}
	tok, err := m.renewLocked(ctx)
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// renewLocked runs the grant matching the current state. m.mu must be held.
func (m *tokenManager) renewLocked(ctx context.Context) (*Token, error) {
	if m.token == nil {
		return m.requestLocked(ctx)
	}
	return m.refreshLocked(ctx, m.token.RefreshToken)
}

func (m *tokenManager) requestLocked(ctx context.Context) (*Token, error) {
	tok, err := m.passwordGrant(ctx)
	if err != nil {
		logTokenEvent(ctx, m.logger, "token_request_failed", nil, err)
		return nil, err
	}
	m.installLocked(tok)
	logTokenEvent(ctx, m.logger, "token_issued", tok, nil)
	return tok, nil
}

func (m *tokenManager) refreshLocked(ctx context.Context, refreshToken string) (*Token, error) {
	tok, err := m.refreshGrant(ctx, refreshToken)
	if err != nil {
		logTokenEvent(ctx, m.logger, "token_refresh_failed", nil, err)
		return nil, err
	}
	m.installLocked(tok)
	logTokenEvent(ctx, m.logger, "token_refreshed", tok, nil)
	return tok, nil
}

// installLocked stores tok and hands a copy to the updater.
func (m *tokenManager) installLocked(tok *Token) {
	m.token = tok
	if m.updater != nil {
		m.updater(*tok)
	}
}

// current returns a copy of the held token, or nil.
func (m *tokenManager) current() *Token {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == nil {
		return nil
	}
	tok := *m.token
	return &tok
}

func (m *tokenManager) set(tok *Token) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tok == nil {
		m.token = nil
		return
	}
	t := *tok
	m.token = &t
}

// RequestToken performs the password grant with the client's credentials,
// replacing any held token. The TokenUpdater receives the new token.
func (c *Client) RequestToken(ctx context.Context) (*Token, error) {
	c.tokens.mu.Lock()
	defer c.tokens.mu.Unlock()

	tok, err := c.tokens.requestLocked(ctx)
	if err != nil {
		return nil, err
	}
	t := *tok
	return &t, nil
}

// RefreshToken exchanges the refresh token of tok for a new token and makes
// it the client's current token. A nil tok refreshes the held token.
// The TokenUpdater receives the new token.
func (c *Client) RefreshToken(ctx context.Context, tok *Token) (*Token, error) {
	c.tokens.mu.Lock()
	defer c.tokens.mu.Unlock()

	if tok == nil {
		tok = c.tokens.token
	}
	if tok == nil {
		return nil, &AuthError{Op: "refresh", Err: ErrNoRefreshToken}
	}

	refreshed, err := c.tokens.refreshLocked(ctx, tok.RefreshToken)
	if err != nil {
		return nil, err
	}
	t := *refreshed
	return &t, nil
}

// EnsureValidToken obtains or refreshes the token if it is missing or
// expired. Resource methods call it implicitly.
func (c *Client) EnsureValidToken(ctx context.Context) error {
	_, err := c.tokens.accessToken(ctx)
	return err
}

// Token returns a copy of the current token, or nil if none is held.
func (c *Client) Token() *Token {
	return c.tokens.current()
}

// SetToken replaces the held token without calling the TokenUpdater.
// A nil token makes the next request perform the password grant.
func (c *Client) SetToken(tok *Token) {
	c.tokens.set(tok)
}
