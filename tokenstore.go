package somfyprotect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// ErrTokenNotFound is returned by a TokenStore that holds no token.
var ErrTokenNotFound = errors.New("somfyprotect: no stored token")

// TokenStore is the interface for persisting OAuth tokens.
type TokenStore interface {
	SaveToken(ctx context.Context, token *Token) error
	LoadToken(ctx context.Context) (*Token, error)
}

// StoreUpdater returns a TokenUpdater that saves every new token to store.
// Save failures are logged to logger, if any, and otherwise dropped: the
// client keeps working with the token held in memory.
func StoreUpdater(store TokenStore, logger *slog.Logger) TokenUpdater {
	return func(tok Token) {
		ctx := context.Background()
		if err := store.SaveToken(ctx, &tok); err != nil && logger != nil {
			logger.LogAttrs(ctx, slog.LevelWarn, "token_save_failed", slog.String("error", err.Error()))
		}
	}
}

// FileTokenStore stores OAuth tokens in a JSON file
type FileTokenStore struct {
	filepath string
	mu       sync.RWMutex
}

// NewFileTokenStore creates a new FileTokenStore
func NewFileTokenStore(filepath string) *FileTokenStore {
	return &FileTokenStore{
		filepath: filepath,
	}
}

// SaveToken saves the token to the file
func (f *FileTokenStore) SaveToken(ctx context.Context, token *Token) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if token == nil {
		return fmt.Errorf("token cannot be nil")
	}

	dir := filepath.Dir(f.filepath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create token directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	// Write to a temporary file first, then rename for atomicity
	tmpFile := f.filepath + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	if err := os.Rename(tmpFile, f.filepath); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to save token file: %w", err)
	}

	return nil
}

// LoadToken loads the token from the file.
// A missing file yields ErrTokenNotFound.
func (f *FileTokenStore) LoadToken(ctx context.Context) (*Token, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.filepath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	return &token, nil
}

// Delete removes the token file
func (f *FileTokenStore) Delete(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.filepath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}
	return nil
}

// MemoryTokenStore stores a token in memory (useful for testing)
type MemoryTokenStore struct {
	token *Token
	mu    sync.RWMutex
}

// NewMemoryTokenStore creates a new in-memory token store
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// SaveToken saves a copy of token
func (m *MemoryTokenStore) SaveToken(ctx context.Context, token *Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token == nil {
		m.token = nil
		return nil
	}
	t := *token
	m.token = &t
	return nil
}

// LoadToken returns a copy of the stored token
func (m *MemoryTokenStore) LoadToken(ctx context.Context) (*Token, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.token == nil {
		return nil, ErrTokenNotFound
	}
	t := *m.token
	return &t, nil
}

// Clear removes the stored token
func (m *MemoryTokenStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = nil
}
