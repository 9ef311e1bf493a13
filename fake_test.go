package somfyprotect

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

const (
	testUsername = "user@example.com"
	testPassword = "s3cret-password"
	tokenPath    = "/oauth/token"
)

// fakeSomfy serves the token endpoint and delegates every other path to
// api. It counts grants and API calls.
type fakeSomfy struct {
	*httptest.Server

	mu             sync.Mutex
	api            http.HandlerFunc
	tokenForms     []url.Values
	passwordGrants int
	refreshGrants  int
	apiCalls       int
	issued         int

	// rejectRefresh makes the refresh grant fail with invalid_grant.
	rejectRefresh bool
	// omitRefreshToken leaves refresh_token out of refresh responses.
	omitRefreshToken bool
	// expiresIn is the lifetime of issued tokens (default 3600).
	expiresIn int
}

func newFakeSomfy(t *testing.T, api http.HandlerFunc) *fakeSomfy {
	t.Helper()

	f := &fakeSomfy{api: api, expiresIn: 3600}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serveHTTP))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeSomfy) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == tokenPath {
		f.serveToken(w, r)
		return
	}

	f.mu.Lock()
	f.apiCalls++
	api := f.api
	f.mu.Unlock()

	if api == nil {
		http.NotFound(w, r)
		return
	}
	api(w, r)
}

func (f *fakeSomfy) serveToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.tokenForms = append(f.tokenForms, r.PostForm)

	switch r.PostForm.Get("grant_type") {
	case "password":
		f.passwordGrants++
		if r.PostForm.Get("username") != testUsername || r.PostForm.Get("password") != testPassword {
			writeOAuthError(w, "invalid_grant", "Invalid username and password combination")
			return
		}
	case "refresh_token":
		f.refreshGrants++
		if f.rejectRefresh {
			writeOAuthError(w, "invalid_grant", "Invalid refresh token")
			return
		}
	default:
		writeOAuthError(w, "unsupported_grant_type", "")
		return
	}

	f.issued++
	resp := map[string]any{
		"access_token": fmt.Sprintf("access-%d", f.issued),
		"token_type":   "bearer",
		"expires_in":   f.expiresIn,
	}
	if !(f.omitRefreshToken && r.PostForm.Get("grant_type") == "refresh_token") {
		resp["refresh_token"] = fmt.Sprintf("refresh-%d", f.issued)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func writeOAuthError(w http.ResponseWriter, code, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{
		"error":             code,
		"error_description": description,
	})
}

func (f *fakeSomfy) counts() (passwordGrants, refreshGrants, apiCalls int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.passwordGrants, f.refreshGrants, f.apiCalls
}

func (f *fakeSomfy) lastTokenForm() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.tokenForms) == 0 {
		return nil
	}
	return f.tokenForms[len(f.tokenForms)-1]
}

// newTestClient returns a client pointed at f.
func newTestClient(t *testing.T, f *fakeSomfy, opts ...Option) *Client {
	t.Helper()

	all := append([]Option{
		WithBaseURL(f.URL),
		WithTokenURL(f.URL + tokenPath),
	}, opts...)
	client, err := NewClient(testUsername, testPassword, all...)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
