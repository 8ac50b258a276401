// Package demo serves the Workspace Africa backend surface from memory.
// It stands in for the real service during local development and in
// integration tests, and everything it returns is marked as demo data so
// placeholder values are never mistaken for live ones.
package demo

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/workspace-africa/teamctl/internal/api"
)

// MinClientVersion is the oldest teamctl this backend supports
const MinClientVersion = "0.1.0"

// Server is the in-memory demo backend
type Server struct {
	store  *store
	signer *signer
	router *mux.Router
	logger *log.Logger
	now    func() time.Time
}

// Option configures a Server
type Option func(*Server)

// WithClock overrides the server clock. Test hook.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithLogger overrides the request logger
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewServer creates a demo backend seeded with one admin, a team,
// members, a pending invite and an active plan.
func NewServer(opts ...Option) *Server {
	srv := &Server{
		logger: log.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(srv)
	}
	srv.store = newStore(srv.now())
	srv.signer = newSigner(srv.now)
	srv.router = srv.routes()
	return srv
}

// Handler returns the HTTP handler for the demo API
func (srv *Server) Handler() http.Handler {
	return srv.router
}

// ListenAndServe runs the demo backend until the listener fails
func (srv *Server) ListenAndServe(addr string) error {
	srv.logger.Printf("demo backend listening on %s", addr)
	srv.logger.Printf("seeded admin: %s / %s", SeedAdminEmail, SeedAdminPassword)
	return http.ListenAndServe(addr, srv.logRequests(srv.router))
}

func (srv *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", srv.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/auth/token/", srv.handleToken).Methods(http.MethodPost)
	r.HandleFunc("/api/users/register/", srv.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/api/users/me/", srv.requireAuth(srv.handleMe)).Methods(http.MethodGet)
	r.HandleFunc("/api/team/dashboard/", srv.requireAuth(srv.handleDashboard)).Methods(http.MethodGet)
	r.HandleFunc("/api/team/members/", srv.requireAuth(srv.handleMembers)).Methods(http.MethodGet)
	r.HandleFunc("/api/team/members/{id}/", srv.requireAuth(srv.handleRemoveMember)).Methods(http.MethodDelete)
	r.HandleFunc("/api/team/invites/", srv.requireAuth(srv.handleListInvites)).Methods(http.MethodGet)
	r.HandleFunc("/api/team/invites/", srv.requireAuth(srv.handleCreateInvite)).Methods(http.MethodPost)
	r.HandleFunc("/api/team/invites/{id}/", srv.requireAuth(srv.handleRevokeInvite)).Methods(http.MethodDelete)
	r.HandleFunc("/api/team/billing/", srv.requireAuth(srv.handleBilling)).Methods(http.MethodGet)
	r.HandleFunc("/api/team/analytics/", srv.requireAuth(srv.handleAnalytics)).Methods(http.MethodGet)
	r.HandleFunc("/api/team/add-subscription/", srv.requireAuth(srv.handleAddSubscription)).Methods(http.MethodPost)
	r.HandleFunc("/api/team/settings/", srv.requireAuth(srv.handleGetSettings)).Methods(http.MethodGet)
	r.HandleFunc("/api/team/settings/", srv.requireAuth(srv.handleUpdateSettings)).Methods(http.MethodPut)
	r.HandleFunc("/api/spaces/", srv.requireAuth(srv.handleSpaces)).Methods(http.MethodGet)
	return r
}

func (srv *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srv.logger.Printf("%s %s request_id=%s", r.Method, r.URL.Path, r.Header.Get("X-Request-ID"))
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeStoreError maps store failures onto the backend's status
// conventions: no team is a 403, unknown records are 404, conflicts
// and bad input are 400.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errNoTeam):
		writeError(w, http.StatusForbidden, errNoTeam.Error())
	case errors.Is(err, errUserNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, errDuplicateInvite):
		writeJSON(w, http.StatusBadRequest, map[string][]string{"email": {errDuplicateInvite.Error()}})
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

func (srv *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.HealthResponse{
		Status:           "healthy",
		Service:          "workspace-africa-demo",
		MinClientVersion: MinClientVersion,
	})
}

func (srv *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := srv.store.authenticate(req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "no active account found with the given credentials")
		return
	}
	access, refresh, err := srv.signer.issuePair(u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue tokens")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access":    access,
		"refresh":   refresh,
		"user_type": u.UserType,
	})
}

func (srv *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email, username and password are required")
		return
	}
	if req.Password != req.Password2 {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"password2": {"passwords do not match"}})
		return
	}
	userType := req.UserType
	if userType == "" {
		userType = api.UserTypeTeamAdmin
	}
	u, err := srv.store.register(req.Email, req.Username, req.Password, userType, srv.now())
	if err != nil {
		if errors.Is(err, errUserExists) {
			writeJSON(w, http.StatusBadRequest, map[string][]string{"email": {errUserExists.Error()}})
			return
		}
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": u.ID, "email": u.Email, "username": u.Username})
}

func (srv *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	profile, err := srv.store.profile(callerID(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (srv *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	team, err := srv.store.dashboard(callerID(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (srv *Server) handleMembers(w http.ResponseWriter, r *http.Request) {
	members, err := srv.store.members(callerID(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func (srv *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}
	if err := srv.store.removeMember(callerID(r), id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (srv *Server) handleListInvites(w http.ResponseWriter, r *http.Request) {
	invites, err := srv.store.invites(callerID(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invites)
}

func (srv *Server) handleCreateInvite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"email": {"this field is required"}})
		return
	}
	invite, err := srv.store.createInvite(callerID(r), req.Email, srv.now())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, invite)
}

func (srv *Server) handleRevokeInvite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid invite id")
		return
	}
	if err := srv.store.revokeInvite(callerID(r), id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (srv *Server) handleBilling(w http.ResponseWriter, r *http.Request) {
	billing, err := srv.store.billing(callerID(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, billing)
}

func (srv *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := srv.store.analytics(callerID(r), srv.now())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

func (srv *Server) handleAddSubscription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlanID int64 `json:"plan_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PlanID == 0 {
		req.PlanID = 2 // default plan, matching the console's one-click setup
	}
	sub, err := srv.store.addSubscription(callerID(r), req.PlanID, srv.now())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (srv *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := srv.store.settings(callerID(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (srv *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings api.OrgSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := srv.store.updateSettings(callerID(r), settings); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (srv *Server) handleSpaces(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, srv.store.listSpaces())
}
