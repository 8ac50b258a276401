package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/workspace-africa/teamctl/internal/config"
	"github.com/workspace-africa/teamctl/internal/keychain"
)

// useMockKeychain swaps the keychain factory for the test's lifetime
func useMockKeychain(t *testing.T) *keychain.MockKeychain {
	t.Helper()
	mockKC := keychain.NewMockKeychain()
	origFactory := keychainFactory
	keychainFactory = func() keychain.Keychain {
		return mockKC
	}
	t.Cleanup(func() {
		keychainFactory = origFactory
	})
	return mockKC
}

// newTestRoot builds a fresh root with the given subcommand and output capture
func newTestRoot(subCmd *cobra.Command) (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{Use: "teamctl", SilenceUsage: true}
	cmd.AddCommand(subCmd)
	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(output)
	return cmd, output
}

func setupTestEnv(t *testing.T, serverURL string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvServerURL, serverURL)
}

func TestLoginCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/token/":
			var req struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Email == "admin@acme.com" && req.Password == "x" {
				_ = json.NewEncoder(w).Encode(map[string]string{"access": "t1", "refresh": "t2"})
			} else {
				w.WriteHeader(http.StatusUnauthorized)
			}
		case "/api/users/me/":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": 1, "username": "admin", "user_type": "TEAM_ADMIN",
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	setupTestEnv(t, server.URL)
	mockKC := useMockKeychain(t)

	cmd, output := newTestRoot(loginCmd)
	cmd.SetArgs([]string{"login", "--email", "admin@acme.com", "--password", "x"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("login command failed: %v", err)
	}

	if !strings.Contains(output.String(), "Login successful") {
		t.Errorf("expected success message, got: %s", output.String())
	}

	access, err := mockKC.Get(keychain.KeyAccessToken)
	if err != nil {
		t.Fatalf("access token not stored: %v", err)
	}
	if access != "t1" {
		t.Errorf("expected 't1', got '%s'", access)
	}
	refresh, err := mockKC.Get(keychain.KeyRefreshToken)
	if err != nil {
		t.Fatalf("refresh token not stored: %v", err)
	}
	if refresh != "t2" {
		t.Errorf("expected 't2', got '%s'", refresh)
	}
}

func TestLoginCommand_NonAdminRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/token/":
			_ = json.NewEncoder(w).Encode(map[string]string{"access": "t1", "refresh": "t2"})
		case "/api/users/me/":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": 2, "username": "partner", "user_type": "PARTNER",
			})
		}
	}))
	defer server.Close()

	setupTestEnv(t, server.URL)
	mockKC := useMockKeychain(t)

	cmd, _ := newTestRoot(loginCmd)
	cmd.SetArgs([]string{"login", "--email", "partner@acme.com", "--password", "x"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for non-admin account")
	}
	if !strings.Contains(err.Error(), "access denied") {
		t.Errorf("expected access denied error, got: %v", err)
	}
	// No half-authenticated session may survive
	if mockKC.Len() != 0 {
		t.Errorf("expected storage cleared, got %d values", mockKC.Len())
	}
}

func TestLoginCommand_InvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "no active account found"})
	}))
	defer server.Close()

	setupTestEnv(t, server.URL)
	mockKC := useMockKeychain(t)

	cmd, _ := newTestRoot(loginCmd)
	cmd.SetArgs([]string{"login", "--email", "admin@acme.com", "--password", "wrong"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for invalid credentials")
	}
	if mockKC.Len() != 0 {
		t.Errorf("expected nothing stored, got %d values", mockKC.Len())
	}
}

func TestLogoutCommand(t *testing.T) {
	setupTestEnv(t, "http://localhost:0")
	mockKC := useMockKeychain(t)
	_ = mockKC.Set(keychain.KeyAccessToken, "t1")
	_ = mockKC.Set(keychain.KeyRefreshToken, "t2")

	cmd, output := newTestRoot(logoutCmd)
	cmd.SetArgs([]string{"logout"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("logout command failed: %v", err)
	}
	if !strings.Contains(output.String(), "Logged out") {
		t.Errorf("expected logout message, got: %s", output.String())
	}
	if mockKC.Len() != 0 {
		t.Errorf("expected empty keychain, got %d values", mockKC.Len())
	}
}
