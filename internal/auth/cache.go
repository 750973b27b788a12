package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"
)

// keyringService groups the app's secrets in the OS keychain.
const keyringService = "outreach"

// Cache persists an OAuth token between runs. Load returns (nil, nil) when
// no session is cached.
type Cache interface {
	Load() (*oauth2.Token, error)
	Store(tok *oauth2.Token) error
	Clear() error
}

// KeyringCache stores the token JSON in the OS keychain, one entry per
// client ID.
type KeyringCache struct {
	Account string
}

// NewKeyringCache returns a keychain-backed cache scoped to the client ID.
func NewKeyringCache(clientID string) *KeyringCache {
	return &KeyringCache{Account: "graph:" + clientID}
}

// Load reads the cached token, (nil, nil) when absent.
func (c *KeyringCache) Load() (*oauth2.Token, error) {
	raw, err := keyring.Get(keyringService, c.Account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read token from keyring: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal([]byte(raw), &tok); err != nil {
		return nil, fmt.Errorf("decode cached token: %w", err)
	}
	return &tok, nil
}

// Store writes the token to the keychain.
func (c *KeyringCache) Store(tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := keyring.Set(keyringService, c.Account, string(data)); err != nil {
		return fmt.Errorf("write token to keyring: %w", err)
	}
	return nil
}

// Clear removes the cached token. A missing entry is not an error.
func (c *KeyringCache) Clear() error {
	err := keyring.Delete(keyringService, c.Account)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("delete token from keyring: %w", err)
	}
	return nil
}

// FileCache stores the token as a 0600 JSON file, for hosts without a
// usable keychain.
type FileCache struct {
	Path string
}

// NewFileCache returns a file-backed cache under the state directory.
func NewFileCache(stateDir string) *FileCache {
	return &FileCache{Path: filepath.Join(stateDir, "token.json")}
}

// Load reads the cached token, (nil, nil) when absent.
func (c *FileCache) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(c.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("decode token file: %w", err)
	}
	return &tok, nil
}

// Store writes the token file with owner-only permissions.
func (c *FileCache) Store(tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(c.Path, data, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

// Clear removes the token file. A missing file is not an error.
func (c *FileCache) Clear() error {
	err := os.Remove(c.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// FallbackCache tries the primary cache first and degrades to the
// secondary (keychain first, file second in practice). Stores and clears
// apply to both so the caches never diverge for long.
type FallbackCache struct {
	Primary   Cache
	Secondary Cache
}

// Load returns the first cached token found.
func (c *FallbackCache) Load() (*oauth2.Token, error) {
	if tok, err := c.Primary.Load(); err == nil && tok != nil {
		return tok, nil
	}
	return c.Secondary.Load()
}

// Store writes to both caches; the secondary only needs to succeed when
// the primary fails.
func (c *FallbackCache) Store(tok *oauth2.Token) error {
	perr := c.Primary.Store(tok)
	serr := c.Secondary.Store(tok)
	if perr != nil && serr != nil {
		return fmt.Errorf("store token: %w", perr)
	}
	return nil
}

// Clear removes the token from both caches.
func (c *FallbackCache) Clear() error {
	perr := c.Primary.Clear()
	serr := c.Secondary.Clear()
	if perr != nil {
		return perr
	}
	return serr
}
