package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/workspace-africa/teamctl/internal/session"
)

// AuthClient wraps Client with session handling. The access token is
// re-read from the session store immediately before every request, and
// a 401 from any request tears the session down through the store's
// once-only path before surfacing session.ErrExpired.
type AuthClient struct {
	client  *Client
	session *session.Store
}

// NewAuthClient creates an API client bound to a session store
func NewAuthClient(baseURL string, store *session.Store) *AuthClient {
	return &AuthClient{
		client:  NewClient(baseURL),
		session: store,
	}
}

// Session exposes the underlying session store
func (ac *AuthClient) Session() *session.Store {
	return ac.session
}

// Debug enables per-request logging on the underlying client
func (ac *AuthClient) Debug(l *log.Logger) {
	ac.client.Debug(l)
}

// Health checks backend reachability without authentication
func (ac *AuthClient) Health(ctx context.Context) (*HealthResponse, error) {
	return ac.client.Health(ctx)
}

// LoginRequest represents the token exchange request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents the issued token pair
type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login exchanges credentials for a token pair, stores it, then verifies
// the account is a team admin. Non-admin accounts are rejected and the
// stored pair is cleared so no half-authenticated session survives.
func (ac *AuthClient) Login(ctx context.Context, email, password string) (*Profile, error) {
	req, err := ac.client.newRequest(ctx, http.MethodPost, "/api/auth/token/", LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var tokens LoginResponse
	if err := ac.client.do(req, &tokens); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("login failed: invalid email or password")
		}
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if err := ac.session.Save(tokens.Access, tokens.Refresh); err != nil {
		return nil, err
	}

	profile, err := ac.Me(ctx)
	if err != nil {
		_ = ac.session.Clear()
		return nil, fmt.Errorf("failed to verify account: %w", err)
	}
	if profile.UserType != UserTypeTeamAdmin {
		_ = ac.session.Clear()
		return nil, ErrAccessDenied
	}
	return profile, nil
}

// RegisterRequest represents the account creation request body
type RegisterRequest struct {
	Email     string   `json:"email"`
	Username  string   `json:"username"`
	Password  string   `json:"password"`
	Password2 string   `json:"password2"`
	UserType  UserType `json:"user_type"`
}

// Register creates a new team admin account
func (ac *AuthClient) Register(ctx context.Context, email, username, password string) error {
	req, err := ac.client.newRequest(ctx, http.MethodPost, "/api/users/register/", RegisterRequest{
		Email:     email,
		Username:  username,
		Password:  password,
		Password2: password,
		UserType:  UserTypeTeamAdmin,
	})
	if err != nil {
		return err
	}
	if err := ac.client.do(req, nil); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	return nil
}

// Me fetches the authenticated user's profile
func (ac *AuthClient) Me(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := ac.get(ctx, "/api/users/me/", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Logout clears the stored credential pair
func (ac *AuthClient) Logout() error {
	return ac.session.Clear()
}

// get issues an authenticated GET
func (ac *AuthClient) get(ctx context.Context, path string, out any) error {
	return ac.doAuthenticated(ctx, http.MethodGet, path, nil, out)
}

// doAuthenticated builds, authorizes and executes a request, then
// classifies the outcome. Classification order: 401 wins over everything
// and expires the session; a 403 from a team-scoped path is the
// "no team yet" state; anything else surfaces as a backend error.
func (ac *AuthClient) doAuthenticated(ctx context.Context, method, path string, payload, out any) error {
	token, err := ac.session.Token()
	if err != nil {
		return err
	}

	req, err := ac.client.newRequest(ctx, method, path, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	err = ac.client.do(req, out)
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized:
			ac.session.Expire()
			return session.ErrExpired
		case apiErr.StatusCode == http.StatusForbidden && teamScoped(path):
			return ErrTeamSetupRequired
		}
	}
	return err
}
