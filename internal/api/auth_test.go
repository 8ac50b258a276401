package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/workspace-africa/teamctl/internal/keychain"
	"github.com/workspace-africa/teamctl/internal/session"
)

func newTestAuthClient(serverURL string) (*AuthClient, *keychain.MockKeychain) {
	kc := keychain.NewMockKeychain()
	return NewAuthClient(serverURL, session.NewStore(kc)), kc
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name         string
		userType     UserType
		wantErr      error
		wantStored   bool
		wantUsername string
	}{
		{
			name:         "team admin may log in",
			userType:     UserTypeTeamAdmin,
			wantStored:   true,
			wantUsername: "admin",
		},
		{
			name:       "partner account is rejected",
			userType:   UserTypePartner,
			wantErr:    ErrAccessDenied,
			wantStored: false,
		},
		{
			name:       "team member account is rejected",
			userType:   UserTypeTeamMember,
			wantErr:    ErrAccessDenied,
			wantStored: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/api/auth/token/":
					var req LoginRequest
					_ = json.NewDecoder(r.Body).Decode(&req)
					if req.Email != "admin@acme.com" || req.Password != "x" {
						w.WriteHeader(http.StatusUnauthorized)
						return
					}
					_ = json.NewEncoder(w).Encode(LoginResponse{Access: "t1", Refresh: "t2"})
				case "/api/users/me/":
					if r.Header.Get("Authorization") != "Bearer t1" {
						w.WriteHeader(http.StatusUnauthorized)
						return
					}
					_ = json.NewEncoder(w).Encode(Profile{ID: 1, Username: "admin", UserType: tt.userType})
				default:
					t.Errorf("unexpected path %s", r.URL.Path)
					w.WriteHeader(http.StatusNotFound)
				}
			}))
			defer server.Close()

			client, kc := newTestAuthClient(server.URL)
			profile, err := client.Login(context.Background(), "admin@acme.com", "x")

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("login failed: %v", err)
			}

			if tt.wantStored {
				access, _ := kc.Get(keychain.KeyAccessToken)
				refresh, _ := kc.Get(keychain.KeyRefreshToken)
				if access != "t1" || refresh != "t2" {
					t.Errorf("expected t1/t2 stored, got %q/%q", access, refresh)
				}
				if profile.Username != tt.wantUsername {
					t.Errorf("expected username %s, got %s", tt.wantUsername, profile.Username)
				}
			} else if kc.Len() != 0 {
				t.Errorf("expected storage cleared for rejected login, got %d values", kc.Len())
			}
		})
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "no active account found"})
	}))
	defer server.Close()

	client, kc := newTestAuthClient(server.URL)
	_, err := client.Login(context.Background(), "admin@acme.com", "wrong")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if kc.Len() != 0 {
		t.Errorf("expected nothing stored after failed login, got %d values", kc.Len())
	}
}

func TestRequestsCarryBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer stored-token" {
			t.Errorf("expected bearer header, got %q", got)
		}
		_ = json.NewEncoder(w).Encode(Profile{ID: 1, UserType: UserTypeTeamAdmin})
	}))
	defer server.Close()

	client, _ := newTestAuthClient(server.URL)
	if err := client.Session().Save("stored-token", "refresh"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := client.Me(context.Background()); err != nil {
		t.Fatalf("me failed: %v", err)
	}
}

func TestGuardBlocksWithoutToken(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	client, _ := newTestAuthClient(server.URL)
	_, err := client.Me(context.Background())
	if !errors.Is(err, session.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if requests.Load() != 0 {
		t.Errorf("expected zero requests without a token, got %d", requests.Load())
	}
}

func TestUnauthorizedExpiresSessionOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "token expired"})
	}))
	defer server.Close()

	client, kc := newTestAuthClient(server.URL)
	if err := client.Session().Save("stale", "stale"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// Concurrent failing requests from one screen load
	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.Dashboard(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if !errors.Is(err, session.ErrExpired) && !errors.Is(err, session.ErrNotAuthenticated) {
			t.Errorf("request %d: expected session teardown error, got %v", i, err)
		}
	}
	if kc.Len() != 0 {
		t.Errorf("expected session cleared, got %d stored values", kc.Len())
	}
}

func TestForbiddenOnTeamEndpointIsSetupState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "no team is associated with this account"})
	}))
	defer server.Close()

	client, kc := newTestAuthClient(server.URL)
	if err := client.Session().Save("t1", "t2"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	_, err := client.Dashboard(context.Background())
	if !errors.Is(err, ErrTeamSetupRequired) {
		t.Fatalf("expected ErrTeamSetupRequired, got %v", err)
	}

	// The setup state must not tear the session down
	if kc.Len() != 2 {
		t.Errorf("expected session intact after 403, got %d stored values", kc.Len())
	}
	token, err := client.Session().Token()
	if err != nil || token != "t1" {
		t.Errorf("expected token still readable, got %q, %v", token, err)
	}
}

func TestForbiddenOutsideTeamScopeIsPlainError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "forbidden"})
	}))
	defer server.Close()

	client, _ := newTestAuthClient(server.URL)
	if err := client.Session().Save("t1", "t2"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	_, err := client.Spaces(context.Background())
	if errors.Is(err, ErrTeamSetupRequired) {
		t.Fatal("spaces 403 must not be classified as team setup")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusForbidden {
		t.Fatalf("expected plain 403 APIError, got %v", err)
	}
}

func TestRegister(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/register/" {
			t.Errorf("expected register path, got %s", r.URL.Path)
		}
		var req RegisterRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.UserType != UserTypeTeamAdmin {
			t.Errorf("expected TEAM_ADMIN registration, got %s", req.UserType)
		}
		if req.Password != req.Password2 {
			t.Error("expected matching password fields")
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client, _ := newTestAuthClient(server.URL)
	if err := client.Register(context.Background(), "new@acme.com", "new", "secret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
}
