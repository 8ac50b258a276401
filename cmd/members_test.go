package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/workspace-africa/teamctl/internal/config"
)

func TestMembersListCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users/me/":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": 1, "username": "admin", "email": "admin@acme.com", "user_type": "TEAM_ADMIN",
			})
		case "/api/team/members/":
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{"id": 1, "username": "admin", "email": "admin@acme.com", "user_type": "TEAM_ADMIN"},
				{"id": 2, "username": "ada", "email": "ada@acme.com", "user_type": "TEAM_MEMBER"},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	setupTestEnv(t, server.URL)
	authedKeychain(t)

	cmd, output := newTestRoot(membersCmd)
	cmd.SetArgs([]string{"members", "list"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("members list failed: %v", err)
	}

	outStr := output.String()
	if !strings.Contains(outStr, "Active members (2)") {
		t.Errorf("expected member count, got: %s", outStr)
	}
	if !strings.Contains(outStr, "ada@acme.com") {
		t.Errorf("expected member row, got: %s", outStr)
	}
	if !strings.Contains(outStr, "(you)") {
		t.Errorf("expected own account marker, got: %s", outStr)
	}
}

// With output.format set to json the list prints machine-readable
// output instead of the table.
func TestMembersListCommand_JSONOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users/me/":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": 1, "username": "admin", "user_type": "TEAM_ADMIN",
			})
		case "/api/team/members/":
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{"id": 1, "username": "admin", "email": "admin@acme.com", "user_type": "TEAM_ADMIN"},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	setupTestEnv(t, server.URL)
	authedKeychain(t)

	cfg := config.Default()
	cfg.Output.Format = "json"
	if err := cfg.Save(); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	cmd, output := newTestRoot(membersCmd)
	cmd.SetArgs([]string{"members", "list"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("members list failed: %v", err)
	}

	var members []map[string]any
	if err := json.Unmarshal(output.Bytes(), &members); err != nil {
		t.Fatalf("expected valid json output, got: %s", output.String())
	}
	if len(members) != 1 || members[0]["email"] != "admin@acme.com" {
		t.Errorf("unexpected json listing: %s", output.String())
	}
}

func TestMembersRemoveCommand_Declined(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	setupTestEnv(t, server.URL)
	authedKeychain(t)

	removeMemberYes = false
	cmd, output := newTestRoot(membersCmd)
	cmd.SetIn(strings.NewReader("n\n"))
	cmd.SetArgs([]string{"members", "remove", "2"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("remove command failed: %v", err)
	}
	if !strings.Contains(output.String(), "Aborted") {
		t.Errorf("expected abort message, got: %s", output.String())
	}
	if requests.Load() != 0 {
		t.Errorf("expected zero requests after decline, got %d", requests.Load())
	}
}

func TestMembersRemoveCommand_Confirmed(t *testing.T) {
	var removed atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/api/team/members/2/":
			removed.Store(true)
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/api/users/me/":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": 1, "username": "admin", "user_type": "TEAM_ADMIN",
			})
		case r.Method == http.MethodGet && r.URL.Path == "/api/team/members/":
			if !removed.Load() {
				t.Error("reload requested before the removal completed")
			}
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{"id": 1, "username": "admin", "email": "admin@acme.com", "user_type": "TEAM_ADMIN"},
			})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	setupTestEnv(t, server.URL)
	authedKeychain(t)

	cmd, output := newTestRoot(membersCmd)
	cmd.SetArgs([]string{"members", "remove", "2", "--yes"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("remove command failed: %v", err)
	}

	outStr := output.String()
	if !strings.Contains(outStr, "Member removed") {
		t.Errorf("expected removal message, got: %s", outStr)
	}
	if !strings.Contains(outStr, "Active members (1)") {
		t.Errorf("expected reloaded list, got: %s", outStr)
	}
}

func TestMembersRemoveCommand_InvalidID(t *testing.T) {
	setupTestEnv(t, "http://localhost:0")
	authedKeychain(t)

	cmd, _ := newTestRoot(membersCmd)
	cmd.SetArgs([]string{"members", "remove", "abc", "--yes"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}
