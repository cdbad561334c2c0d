package auth

import (
	"forum-lab/errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_Generate_And_Validate(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.GenerateToken("user-1", []string{"user"})
	req.NoError(err)

	claims, err := issuer.ValidateToken(token)
	req.NoError(err)
	req.Equal("user-1", claims.UserID)
	req.Equal([]string{"user"}, claims.Roles)
}

func TestTokenIssuer_Rejects_Foreign_And_Expired_Tokens(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("test-secret", time.Hour)
	other := NewTokenIssuer("other-secret", time.Hour)

	foreign, err := other.GenerateToken("user-1", nil)
	req.NoError(err)
	_, err = issuer.ValidateToken(foreign)
	req.ErrorIs(err, errors.ErrInvalidToken)

	expired := NewTokenIssuer("test-secret", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := expired.GenerateToken("user-1", nil)
	req.NoError(err)
	_, err = issuer.ValidateToken(token)
	req.ErrorIs(err, errors.ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	token, err := issuer.GenerateToken("user-1", []string{"user"})
	require.NoError(t, err)

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		allowQuery bool
		header     string
		query      string
		wantStatus int
		wantUser   string
	}{
		{"bearer header", false, "Bearer " + token, "", http.StatusNoContent, "user-1"},
		{"missing token", false, "", "", http.StatusUnauthorized, ""},
		{"invalid token", false, "Bearer garbage", "", http.StatusUnauthorized, ""},
		{"query token refused", false, "", "?token=" + token, http.StatusUnauthorized, ""},
		{"query token accepted", true, "", "?token=" + token, http.StatusNoContent, "user-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			seen = ""
			r := httptest.NewRequest(http.MethodGet, "/rooms"+tt.query, nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			Middleware(issuer, tt.allowQuery)(next).ServeHTTP(w, r)

			req.Equal(tt.wantStatus, w.Code)
			req.Equal(tt.wantUser, seen)
		})
	}
}
