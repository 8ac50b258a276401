package keychain

import (
	"errors"
	"sync"
	"testing"
)

func TestMockKeychain(t *testing.T) {
	kc := NewMockKeychain()

	// Get before set
	if _, err := kc.Get(KeyAccessToken); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// Set and get
	if err := kc.Set(KeyAccessToken, "token-value"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, err := kc.Get(KeyAccessToken)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != "token-value" {
		t.Errorf("expected 'token-value', got '%s'", value)
	}

	// Overwrite replaces the whole value
	if err := kc.Set(KeyAccessToken, "new-value"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, _ = kc.Get(KeyAccessToken)
	if value != "new-value" {
		t.Errorf("expected 'new-value', got '%s'", value)
	}

	// Delete
	if err := kc.Delete(KeyAccessToken); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := kc.Get(KeyAccessToken); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting a missing key is not an error
	if err := kc.Delete("missing"); err != nil {
		t.Errorf("expected nil deleting missing key, got %v", err)
	}
}

func TestMockKeychainSeparateKeys(t *testing.T) {
	kc := NewMockKeychain()

	if err := kc.Set(KeyAccessToken, "access"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := kc.Set(KeyRefreshToken, "refresh"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if kc.Len() != 2 {
		t.Errorf("expected 2 stored values, got %d", kc.Len())
	}

	access, _ := kc.Get(KeyAccessToken)
	refresh, _ := kc.Get(KeyRefreshToken)
	if access != "access" || refresh != "refresh" {
		t.Errorf("keys crossed: access=%q refresh=%q", access, refresh)
	}
}

func TestMockKeychainConcurrent(t *testing.T) {
	kc := NewMockKeychain()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = kc.Set(KeyAccessToken, "token")
			_, _ = kc.Get(KeyAccessToken)
			_ = kc.Delete(KeyAccessToken)
		}()
	}
	wg.Wait()
}
