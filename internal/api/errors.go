package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrTeamSetupRequired is returned when a team-scoped endpoint answers 403,
// meaning no team is associated with the account yet. This is a renderable
// application state, not a failure: callers must show the setup screen and
// must not tear the session down.
var ErrTeamSetupRequired = errors.New("no team is associated with this account yet")

// ErrAccessDenied is returned when the authenticated user is not a team admin
var ErrAccessDenied = errors.New("access denied: this console is for team admin accounts")

// APIError carries a backend failure with its HTTP status
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// parseAPIError extracts the backend-provided message where available.
// The backend reports failures as {"detail": "..."}, {"error": "..."} or
// DRF-style field errors like {"email": ["..."]}.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return apiErr
	}

	for _, key := range []string{"detail", "error", "message"} {
		var msg string
		if raw, ok := fields[key]; ok && json.Unmarshal(raw, &msg) == nil && msg != "" {
			apiErr.Message = msg
			return apiErr
		}
	}

	// Field-level validation errors: report them as "field: message"
	var parts []string
	for field, raw := range fields {
		var msgs []string
		if json.Unmarshal(raw, &msgs) == nil && len(msgs) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msgs[0]))
		}
	}
	if len(parts) > 0 {
		apiErr.Message = strings.Join(parts, "; ")
	}
	return apiErr
}

// teamScoped reports whether a path belongs to the admin team surface,
// where a 403 means "no team yet" rather than a permission failure.
func teamScoped(path string) bool {
	return strings.HasPrefix(path, "/api/team/")
}

// IsNotFound reports whether err is a backend 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
