package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/workspace-africa/teamctl/internal/keychain"
)

// ErrNotAuthenticated is returned when no access token is stored
var ErrNotAuthenticated = errors.New("not authenticated: please run 'teamctl login' first")

// ErrExpired is returned after a 401 has torn the session down
var ErrExpired = errors.New("session expired: please run 'teamctl login' again")

// Store is the single read/write surface for the credential pair.
// Every component that needs the access token goes through here instead
// of touching the keychain directly. All keychain access is serialized
// behind one mutex, so teardown on 401 happens exactly once no matter
// how many concurrent requests observe it, and a login overlapping an
// in-flight teardown cannot interleave with its deletes.
type Store struct {
	kc      keychain.Keychain
	mu      sync.Mutex
	expired bool
}

// NewStore creates a session store backed by the given keychain
func NewStore(kc keychain.Keychain) *Store {
	return &Store{kc: kc}
}

// Save stores a freshly issued token pair, replacing any previous session
func (s *Store) Save(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kc.Set(keychain.KeyAccessToken, accessToken); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}
	// The refresh token is held but never exchanged; expiry forces a
	// fresh login. Kept so storage matches what the backend issues.
	if err := s.kc.Set(keychain.KeyRefreshToken, refreshToken); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	s.expired = false
	return nil
}

// Token returns the stored access token. Readers call this immediately
// before each request rather than caching the value.
func (s *Store) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.expired {
		return "", ErrExpired
	}
	token, err := s.kc.Get(keychain.KeyAccessToken)
	if err != nil {
		if errors.Is(err, keychain.ErrNotFound) {
			return "", ErrNotAuthenticated
		}
		return "", fmt.Errorf("failed to retrieve access token: %w", err)
	}
	return token, nil
}

// Expire destroys the session in response to a 401. Safe to call from
// concurrent request paths; only the first call clears storage.
func (s *Store) Expire() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.expired {
		return
	}
	s.expired = true
	_ = s.kc.Delete(keychain.KeyAccessToken)
	_ = s.kc.Delete(keychain.KeyRefreshToken)
}

// Clear removes the credential pair on explicit logout
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kc.Delete(keychain.KeyAccessToken); err != nil {
		return fmt.Errorf("failed to delete access token: %w", err)
	}
	if err := s.kc.Delete(keychain.KeyRefreshToken); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}
