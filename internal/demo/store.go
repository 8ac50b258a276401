package demo

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/workspace-africa/teamctl/internal/api"
)

// Seed credentials for the demo admin account
const (
	SeedAdminEmail    = "demo@workspace.africa"
	SeedAdminPassword = "demo1234"
)

var (
	errUserExists      = errors.New("a user with this email already exists")
	errUserNotFound    = errors.New("user not found")
	errNoTeam          = errors.New("no team is associated with this account")
	errDuplicateInvite = errors.New("a pending invitation for this email already exists")
	errActivePlan      = errors.New("the team already has an active subscription")
	errUnknownPlan     = errors.New("unknown plan")
)

type user struct {
	ID           int64
	Username     string
	Email        string
	UserType     api.UserType
	PasswordHash []byte
	DateJoined   time.Time
	TeamID       int64 // zero means no team yet
}

type team struct {
	ID           int64
	Name         string
	MemberIDs    []int64
	Invites      []api.Invite
	Subscription *api.Subscription
	Settings     api.OrgSettings
	Invoices     []api.Invoice
}

// store holds all demo state in memory behind one lock. The demo
// backend exists to make placeholder data explicit, so nothing here
// survives a restart on purpose.
type store struct {
	mu         sync.Mutex
	users      map[int64]*user
	usersEmail map[string]int64
	teams      map[int64]*team
	plans      []api.Plan
	spaces     []api.Space
	nextID     int64
}

func newStore(now time.Time) *store {
	s := &store{
		users:      make(map[int64]*user),
		usersEmail: make(map[string]int64),
		teams:      make(map[int64]*team),
		nextID:     1,
	}
	s.seed(now)
	return s
}

func (s *store) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// seed builds the demo team: an admin with two members, one pending
// invite, an active plan and an invoice history.
func (s *store) seed(now time.Time) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(SeedAdminPassword), bcrypt.DefaultCost)

	admin := &user{
		ID:           s.id(),
		Username:     "demo-admin",
		Email:        SeedAdminEmail,
		UserType:     api.UserTypeTeamAdmin,
		PasswordHash: hash,
		DateJoined:   now.AddDate(0, -6, 0),
	}
	s.users[admin.ID] = admin
	s.usersEmail[admin.Email] = admin.ID

	memberNames := []struct{ username, email string }{
		{"ada", "ada@acme.com"},
		{"chinedu", "chinedu@acme.com"},
	}
	t := &team{
		ID:   s.id(),
		Name: "Acme Lagos",
		Settings: api.OrgSettings{
			Name:           "Acme Lagos",
			ContactEmail:   SeedAdminEmail,
			BillingAddress: "14 Marina Road, Lagos Island, Lagos",
		},
	}
	admin.TeamID = t.ID
	t.MemberIDs = append(t.MemberIDs, admin.ID)

	for _, m := range memberNames {
		u := &user{
			ID:         s.id(),
			Username:   m.username,
			Email:      m.email,
			UserType:   api.UserTypeTeamMember,
			DateJoined: now.AddDate(0, -3, 0),
			TeamID:     t.ID,
		}
		s.users[u.ID] = u
		s.usersEmail[u.Email] = u.ID
		t.MemberIDs = append(t.MemberIDs, u.ID)
	}

	s.plans = []api.Plan{
		{ID: 1, Name: "Starter", PriceNGN: 25000, IncludedDays: 8, AccessTier: "Standard"},
		{ID: 2, Name: "Growth", PriceNGN: 45000, IncludedDays: 16, AccessTier: "Standard"},
		{ID: 3, Name: "Scale", PriceNGN: 90000, IncludedDays: 30, AccessTier: "Premium"},
	}
	t.Subscription = &api.Subscription{
		Plan:     s.plans[1],
		EndDate:  now.AddDate(0, 0, 18),
		IsActive: true,
	}
	for i := 1; i <= 3; i++ {
		t.Invoices = append(t.Invoices, api.Invoice{
			ID:        int64(i),
			Date:      now.AddDate(0, -i, 0),
			AmountNGN: 45000,
			Status:    "Paid",
		})
	}
	t.Invites = append(t.Invites, api.Invite{
		ID:        s.id(),
		Email:     "funke@acme.com",
		Status:    api.InvitePending,
		CreatedAt: now.AddDate(0, 0, -2),
		SentBy:    admin.Username,
	})

	s.teams[t.ID] = t

	s.spaces = []api.Space{
		{ID: 1, Name: "The Hub Yaba", Address: "21 Herbert Macaulay Way, Yaba", AccessTier: "Standard"},
		{ID: 2, Name: "Marina Works", Address: "5 Broad Street, Lagos Island", AccessTier: "Standard"},
		{ID: 3, Name: "Eko Atlantic Lofts", Address: "1 Water Corporation Drive, Victoria Island", AccessTier: "Premium"},
	}
}

func (s *store) authenticate(email, password string) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.usersEmail[email]
	if !ok {
		return nil, errUserNotFound
	}
	u := s.users[id]
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return nil, errUserNotFound
	}
	return u, nil
}

func (s *store) register(email, username, password string, userType api.UserType, now time.Time) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.usersEmail[email]; ok {
		return nil, errUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &user{
		ID:           s.id(),
		Username:     username,
		Email:        email,
		UserType:     userType,
		PasswordHash: hash,
		DateJoined:   now,
	}
	s.users[u.ID] = u
	s.usersEmail[u.Email] = u.ID
	return u, nil
}

func (s *store) profile(userID int64) (*api.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, errUserNotFound
	}
	return &api.Profile{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		UserType:   u.UserType,
		DateJoined: u.DateJoined,
	}, nil
}

// teamFor returns the caller's team, or errNoTeam for admins that have
// not completed setup.
func (s *store) teamFor(userID int64) (*team, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, errUserNotFound
	}
	t, ok := s.teams[u.TeamID]
	if !ok {
		return nil, errNoTeam
	}
	return t, nil
}

func (s *store) dashboard(userID int64) (*api.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.teamFor(userID)
	if err != nil {
		return nil, err
	}
	out := &api.Team{
		ID:           t.ID,
		Name:         t.Name,
		Members:      s.membersLocked(t),
		Invitations:  append([]api.Invite(nil), t.Invites...),
		Subscription: t.Subscription,
	}
	return out, nil
}

func (s *store) membersLocked(t *team) []api.Member {
	members := make([]api.Member, 0, len(t.MemberIDs))
	for _, id := range t.MemberIDs {
		u := s.users[id]
		members = append(members, api.Member{
			ID:         u.ID,
			Username:   u.Username,
			Email:      u.Email,
			UserType:   u.UserType,
			DateJoined: u.DateJoined,
		})
	}
	return members
}

func (s *store) members(userID int64) ([]api.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.teamFor(userID)
	if err != nil {
		return nil, err
	}
	return s.membersLocked(t), nil
}

func (s *store) removeMember(userID, memberID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.teamFor(userID)
	if err != nil {
		return err
	}
	for i, id := range t.MemberIDs {
		if id == memberID {
			t.MemberIDs = append(t.MemberIDs[:i], t.MemberIDs[i+1:]...)
			if u, ok := s.users[memberID]; ok {
				u.TeamID = 0
			}
			return nil
		}
	}
	return errUserNotFound
}

func (s *store) invites(userID int64) ([]api.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.teamFor(userID)
	if err != nil {
		return nil, err
	}
	return append([]api.Invite(nil), t.Invites...), nil
}

func (s *store) createInvite(userID int64, email string, now time.Time) (*api.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.teamFor(userID)
	if err != nil {
		return nil, err
	}
	for _, inv := range t.Invites {
		if inv.Email == email && inv.Status == api.InvitePending {
			return nil, errDuplicateInvite
		}
	}
	inv := api.Invite{
		ID:        s.id(),
		Email:     email,
		Status:    api.InvitePending,
		CreatedAt: now,
		SentBy:    s.users[userID].Username,
	}
	t.Invites = append(t.Invites, inv)
	return &inv, nil
}

// revokeInvite moves a pending invite to REVOKED. Transitions are
// monotonic: anything past PENDING stays where it is.
func (s *store) revokeInvite(userID, inviteID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.teamFor(userID)
	if err != nil {
		return err
	}
	for i := range t.Invites {
		if t.Invites[i].ID == inviteID {
			if t.Invites[i].Status != api.InvitePending {
				return errors.New("only pending invitations can be revoked")
			}
			t.Invites[i].Status = api.InviteRevoked
			return nil
		}
	}
	return errUserNotFound
}

func (s *store) billing(userID int64) (*api.Billing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.teamFor(userID)
	if err != nil {
		return nil, err
	}
	return &api.Billing{
		Subscription: t.Subscription,
		Invoices:     append([]api.Invoice(nil), t.Invoices...),
		Demo:         true,
	}, nil
}

func (s *store) addSubscription(userID, planID int64, now time.Time) (*api.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, errUserNotFound
	}

	// A first subscription doubles as team setup for a fresh admin.
	t, ok := s.teams[u.TeamID]
	if !ok {
		t = &team{
			ID:        s.id(),
			Name:      u.Username + "'s team",
			MemberIDs: []int64{u.ID},
			Settings:  api.OrgSettings{Name: u.Username + "'s team", ContactEmail: u.Email},
		}
		s.teams[t.ID] = t
		u.TeamID = t.ID
	}

	if t.Subscription != nil && t.Subscription.IsActive {
		return nil, errActivePlan
	}
	for _, p := range s.plans {
		if p.ID == planID {
			t.Subscription = &api.Subscription{
				Plan:     p,
				EndDate:  now.AddDate(0, 1, 0),
				IsActive: true,
			}
			return t.Subscription, nil
		}
	}
	return nil, errUnknownPlan
}

// analytics derives usage figures from the current roster. The numbers
// are synthetic and flagged as demo data, like billing.
func (s *store) analytics(userID int64, now time.Time) (*api.TeamAnalytics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.teamFor(userID)
	if err != nil {
		return nil, err
	}

	out := &api.TeamAnalytics{Demo: true}
	if len(s.spaces) > 0 {
		out.TopSpace = s.spaces[0].Name
	}
	if t.Subscription != nil {
		out.DaysIncluded = t.Subscription.Plan.IncludedDays
	}
	for i, id := range t.MemberIDs {
		u := s.users[id]
		checkins := 4 + 3*i
		out.MemberActivity = append(out.MemberActivity, api.MemberActivity{
			MemberID: u.ID,
			Username: u.Username,
			Checkins: checkins,
			LastSeen: now.AddDate(0, 0, -i),
		})
		out.CheckinsThisMonth += checkins
	}
	out.DaysUsed = out.CheckinsThisMonth
	if out.DaysIncluded > 0 && out.DaysUsed > out.DaysIncluded {
		out.DaysUsed = out.DaysIncluded
	}
	return out, nil
}

func (s *store) settings(userID int64) (*api.OrgSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.teamFor(userID)
	if err != nil {
		return nil, err
	}
	out := t.Settings
	return &out, nil
}

func (s *store) updateSettings(userID int64, settings api.OrgSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.teamFor(userID)
	if err != nil {
		return err
	}
	t.Settings = settings
	if settings.Name != "" {
		t.Name = settings.Name
	}
	return nil
}

func (s *store) listSpaces() []api.Space {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Space(nil), s.spaces...)
}
