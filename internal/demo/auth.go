package demo

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/workspace-africa/teamctl/internal/api"
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

type contextKey string

const userIDKey contextKey = "userID"

type tokenClaims struct {
	UserType api.UserType `json:"user_type"`
	Kind     string       `json:"kind"`
	jwt.RegisteredClaims
}

// signer issues and verifies the demo backend's tokens. The signing key
// is random per process, so tokens from a previous demo run come back
// as a plain 401.
type signer struct {
	key []byte
	now func() time.Time
}

func newSigner(now func() time.Time) *signer {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic(fmt.Sprintf("failed to generate signing key: %v", err))
	}
	return &signer{key: key, now: now}
}

func (s *signer) issue(u *user, kind string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := tokenClaims{
		UserType: u.UserType,
		Kind:     kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

func (s *signer) issuePair(u *user) (access, refresh string, err error) {
	access, err = s.issue(u, "access", accessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.issue(u, "refresh", refreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *signer) verify(raw string) (int64, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.key, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}
	if claims.Kind != "access" {
		return 0, fmt.Errorf("not an access token")
	}
	var id int64
	if _, err := fmt.Sscanf(claims.Subject, "%d", &id); err != nil {
		return 0, fmt.Errorf("invalid token subject")
	}
	return id, nil
}

// requireAuth rejects requests without a valid bearer token
func (srv *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "authentication credentials were not provided")
			return
		}
		userID, err := srv.signer.verify(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	}
}

func callerID(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDKey).(int64)
	return id
}
