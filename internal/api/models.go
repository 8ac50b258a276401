package api

import "time"

// UserType gates which surface an account may use after login
type UserType string

const (
	UserTypeTeamAdmin  UserType = "TEAM_ADMIN"
	UserTypeTeamMember UserType = "TEAM_MEMBER"
	UserTypePartner    UserType = "PARTNER"
)

// Profile is the authenticated user's account record
type Profile struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	UserType   UserType  `json:"user_type"`
	DateJoined time.Time `json:"date_joined"`
}

// Member is a user belonging to the admin's team
type Member struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	UserType   UserType  `json:"user_type"`
	DateJoined time.Time `json:"date_joined"`
}

// Team is the dashboard summary for the admin's single team
type Team struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Members      []Member      `json:"members"`
	Invitations  []Invite      `json:"invitations,omitempty"`
	Subscription *Subscription `json:"subscription,omitempty"`
}

// InviteStatus transitions are monotonic and owned by the backend:
// PENDING moves to exactly one of ACCEPTED, REVOKED or EXPIRED and
// never back. The client treats the value as a read-only fact.
type InviteStatus string

const (
	InvitePending  InviteStatus = "PENDING"
	InviteAccepted InviteStatus = "ACCEPTED"
	InviteRevoked  InviteStatus = "REVOKED"
	InviteExpired  InviteStatus = "EXPIRED"
)

// Invite is a pending request for a new member to join the team
type Invite struct {
	ID        int64        `json:"id"`
	Email     string       `json:"email"`
	Status    InviteStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	SentBy    string       `json:"sent_by"`
}

// IsPending reports whether the invite can still be accepted or revoked
func (i Invite) IsPending() bool {
	return i.Status == InvitePending
}

// PendingCount counts invites still awaiting a response
func PendingCount(invites []Invite) int {
	n := 0
	for _, inv := range invites {
		if inv.IsPending() {
			n++
		}
	}
	return n
}

// Plan describes a purchasable subscription tier
type Plan struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	PriceNGN     int64  `json:"price_ngn"`
	IncludedDays int    `json:"included_days"`
	AccessTier   string `json:"access_tier"`
}

// Subscription is the team's active plan. A nil subscription on Billing
// means "no active plan", which is a recognized state rather than an error.
type Subscription struct {
	Plan     Plan      `json:"plan"`
	EndDate  time.Time `json:"end_date"`
	IsActive bool      `json:"is_active"`
}

// DaysLeft returns whole days until the subscription ends, never negative
func (s *Subscription) DaysLeft(now time.Time) int {
	if s == nil || !s.EndDate.After(now) {
		return 0
	}
	return int(s.EndDate.Sub(now).Hours() / 24)
}

// Invoice is a past billing record
type Invoice struct {
	ID        int64     `json:"id"`
	Date      time.Time `json:"date"`
	AmountNGN int64     `json:"amount_ngn"`
	Status    string    `json:"status"`
}

// Billing is the team's subscription and payment history. Demo marks
// placeholder data served by the demo backend so it is never mistaken
// for a real billing record.
type Billing struct {
	Subscription *Subscription `json:"subscription"`
	Invoices     []Invoice     `json:"invoices,omitempty"`
	Demo         bool          `json:"demo,omitempty"`
}

// MemberActivity is one member's workspace usage within the current
// billing period
type MemberActivity struct {
	MemberID int64     `json:"member_id"`
	Username string    `json:"username"`
	Checkins int       `json:"checkins"`
	LastSeen time.Time `json:"last_seen"`
}

// TeamAnalytics summarizes the team's workspace usage. Demo marks
// placeholder figures served by the demo backend, same as Billing.
type TeamAnalytics struct {
	CheckinsThisMonth int              `json:"checkins_this_month"`
	DaysUsed          int              `json:"days_used"`
	DaysIncluded      int              `json:"days_included"`
	TopSpace          string           `json:"top_space"`
	MemberActivity    []MemberActivity `json:"member_activity,omitempty"`
	Demo              bool             `json:"demo,omitempty"`
}

// OrgSettings are the editable organization fields
type OrgSettings struct {
	Name           string `json:"name"`
	ContactEmail   string `json:"contact_email"`
	BillingAddress string `json:"billing_address"`
}

// Space is a physical workspace available to subscribed members
type Space struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	AccessTier string `json:"access_tier"`
}
