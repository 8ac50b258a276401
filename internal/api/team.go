package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrEmptyEmail rejects an invite before any request is made. Format
// validation stays with the backend.
var ErrEmptyEmail = errors.New("email address is required")

// Dashboard fetches the team summary
func (ac *AuthClient) Dashboard(ctx context.Context) (*Team, error) {
	var team Team
	if err := ac.get(ctx, "/api/team/dashboard/", &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// Members lists the team's members
func (ac *AuthClient) Members(ctx context.Context) ([]Member, error) {
	var members []Member
	if err := ac.get(ctx, "/api/team/members/", &members); err != nil {
		return nil, err
	}
	return members, nil
}

// RemoveMember removes a member from the team
func (ac *AuthClient) RemoveMember(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/team/members/%d/", id)
	if err := ac.doAuthenticated(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// Invites lists the team's invitations
func (ac *AuthClient) Invites(ctx context.Context) ([]Invite, error) {
	var invites []Invite
	if err := ac.get(ctx, "/api/team/invites/", &invites); err != nil {
		return nil, err
	}
	return invites, nil
}

// SendInvite creates an invitation for the given email address
func (ac *AuthClient) SendInvite(ctx context.Context, email string) (*Invite, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmptyEmail
	}

	var invite Invite
	payload := map[string]string{"email": email}
	if err := ac.doAuthenticated(ctx, http.MethodPost, "/api/team/invites/", payload, &invite); err != nil {
		return nil, fmt.Errorf("failed to send invitation: %w", err)
	}
	return &invite, nil
}

// RevokeInvite revokes a pending invitation
func (ac *AuthClient) RevokeInvite(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/team/invites/%d/", id)
	if err := ac.doAuthenticated(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("failed to revoke invitation: %w", err)
	}
	return nil
}

// Billing fetches the team's subscription and invoice history
func (ac *AuthClient) Billing(ctx context.Context) (*Billing, error) {
	var billing Billing
	if err := ac.get(ctx, "/api/team/billing/", &billing); err != nil {
		return nil, err
	}
	return &billing, nil
}

// AddSubscription provisions a subscription on the given plan
func (ac *AuthClient) AddSubscription(ctx context.Context, planID int64) (*Subscription, error) {
	var sub Subscription
	payload := map[string]int64{"plan_id": planID}
	if err := ac.doAuthenticated(ctx, http.MethodPost, "/api/team/add-subscription/", payload, &sub); err != nil {
		return nil, fmt.Errorf("failed to add subscription: %w", err)
	}
	return &sub, nil
}

// Analytics fetches the team's workspace usage figures
func (ac *AuthClient) Analytics(ctx context.Context) (*TeamAnalytics, error) {
	var analytics TeamAnalytics
	if err := ac.get(ctx, "/api/team/analytics/", &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}

// Settings fetches the organization settings
func (ac *AuthClient) Settings(ctx context.Context) (*OrgSettings, error) {
	var settings OrgSettings
	if err := ac.get(ctx, "/api/team/settings/", &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings saves the organization settings
func (ac *AuthClient) UpdateSettings(ctx context.Context, settings *OrgSettings) error {
	if err := ac.doAuthenticated(ctx, http.MethodPut, "/api/team/settings/", settings, nil); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Spaces lists the available workspaces
func (ac *AuthClient) Spaces(ctx context.Context) ([]Space, error) {
	var spaces []Space
	if err := ac.get(ctx, "/api/spaces/", &spaces); err != nil {
		return nil, err
	}
	return spaces, nil
}
