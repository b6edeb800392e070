package session

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/dvnguyen/socialapp-client/pkg/config"
)

// TokenStore keeps the bearer credential in memory and mirrors it to a file,
// so a restarted process can resume the session without a fresh login.
type TokenStore struct {
	path string

	mu    sync.RWMutex
	token string
}

func NewTokenStore(cfg *config.Config) *TokenStore {
	return &TokenStore{path: cfg.Session.TokenPath}
}

// Token returns the current credential, or "" when logged out.
func (s *TokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Load reads the persisted credential from disk.
func (s *TokenStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("token file not found: %w", err)
		}
		return fmt.Errorf("failed to read token file: %w", err)
	}

	s.mu.Lock()
	s.token = strings.TrimSpace(string(data))
	s.mu.Unlock()
	return nil
}

// Save stores the credential in memory and on disk.
func (s *TokenStore) Save(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	return nil
}

// Clear drops the credential from memory and disk.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
