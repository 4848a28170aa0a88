package gate

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSessions Session

func (s staticSessions) CurrentSession(*http.Request) Session { return Session(s) }

func TestCheck(t *testing.T) {
	verified := verifiedSession()

	tests := []struct {
		name      string
		session   Session
		completed bool
		query     string
		want      DecisionResponse
		wantCode  int
	}{
		{
			name:     "anonymous carries return path",
			session:  Session{},
			query:    "?path=/closet",
			want:     DecisionResponse{Decision: "redirect", Path: PathAuth, ReturnTo: "/closet"},
			wantCode: http.StatusOK,
		},
		{
			name:     "unverified",
			session:  Session{UserID: uuid.New()},
			query:    "?path=/closet",
			want:     DecisionResponse{Decision: "redirect", Path: PathVerifyEmail},
			wantCode: http.StatusOK,
		},
		{
			name:     "not onboarded",
			session:  verified,
			query:    "?path=/closet",
			want:     DecisionResponse{Decision: "redirect", Path: PathOnboarding},
			wantCode: http.StatusOK,
		},
		{
			name:      "onboarded visiting onboarding",
			session:   verified,
			completed: true,
			query:     "?path=/onboarding",
			want:      DecisionResponse{Decision: "redirect", Path: PathHome},
			wantCode:  http.StatusOK,
		},
		{
			name:     "verified level",
			session:  verified,
			query:    "?path=/onboarding&level=verified",
			want:     DecisionResponse{Decision: "allow"},
			wantCode: http.StatusOK,
		},
		{
			name:     "pending session",
			session:  Session{Pending: true},
			query:    "?path=/home",
			want:     DecisionResponse{Decision: "loading"},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(NewSequencer(&fakeSource{completed: tt.completed}, NewMemoryCache()), staticSessions(tt.session))

			rec := httptest.NewRecorder()
			h.Check(rec, httptest.NewRequest(http.MethodGet, "/gate"+tt.query, nil))

			require.Equal(t, tt.wantCode, rec.Code)
			var got DecisionResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckRejectsUnknownLevel(t *testing.T) {
	h := NewHandler(NewSequencer(&fakeSource{}, NewMemoryCache()), staticSessions(Session{}))

	rec := httptest.NewRecorder()
	h.Check(rec, httptest.NewRequest(http.MethodGet, "/gate?level=admin", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequire(t *testing.T) {
	verified := verifiedSession()

	tests := []struct {
		name         string
		session      Session
		completed    bool
		level        Level
		wantStatus   int
		wantRedirect string
	}{
		{"anonymous", Session{}, false, RequireSession, http.StatusUnauthorized, PathAuth},
		{"unverified", Session{UserID: uuid.New()}, false, RequireVerified, http.StatusForbidden, PathVerifyEmail},
		{"unverified at session level", Session{UserID: uuid.New()}, false, RequireSession, http.StatusNoContent, ""},
		{"not onboarded", verified, false, RequireOnboarded, http.StatusForbidden, PathOnboarding},
		{"onboarded", verified, true, RequireOnboarded, http.StatusNoContent, ""},
		{"pending", Session{Pending: true}, false, RequireSession, http.StatusServiceUnavailable, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(NewSequencer(&fakeSource{completed: tt.completed}, NewMemoryCache()), staticSessions(tt.session))
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})

			rec := httptest.NewRecorder()
			h.Require(tt.level)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/closet/items", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusNoContent {
				return
			}

			var body BlockedResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantRedirect, body.Redirect)
			assert.NotEmpty(t, body.Code)
		})
	}
}
