package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/wardrobe-api/internal/auth"
	"github.com/redmonkez12/wardrobe-api/internal/closet"
	"github.com/redmonkez12/wardrobe-api/internal/config"
	"github.com/redmonkez12/wardrobe-api/internal/gate"
	"github.com/redmonkez12/wardrobe-api/internal/httputil"
	"github.com/redmonkez12/wardrobe-api/internal/logging"
	"github.com/redmonkez12/wardrobe-api/internal/onboarding"
	"github.com/redmonkez12/wardrobe-api/internal/user"
	"github.com/redmonkez12/wardrobe-api/internal/vision"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

type fakeUsers map[uuid.UUID]*user.User

func (f fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

type fakeStatus map[uuid.UUID]bool

func (f fakeStatus) OnboardingStatus(_ context.Context, id uuid.UUID) (bool, error) {
	completed, ok := f[id]
	if !ok {
		return false, gate.ErrStatusNotFound
	}
	return completed, nil
}

type emptyCloset struct{}

func (emptyCloset) List(context.Context, uuid.UUID, string) ([]closet.Item, error) {
	return []closet.Item{}, nil
}

func (emptyCloset) Create(context.Context, uuid.UUID, closet.ItemInput) (*closet.Item, error) {
	return nil, closet.ErrInvalidCategory
}

func (emptyCloset) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return closet.ErrItemNotFound
}

type routerEnv struct {
	router http.Handler
	tokens auth.TokenService
	users  fakeUsers
	status fakeStatus
}

func newRouterEnv(t *testing.T) *routerEnv {
	t.Helper()

	tokens, err := auth.NewPasetoService(testKey)
	require.NoError(t, err)

	logger := logging.NewLogger(true)
	env := &routerEnv{tokens: tokens, users: fakeUsers{}, status: fakeStatus{}}

	cache := gate.NewMemoryCache()
	sequencer := gate.NewSequencer(env.status, cache)
	authService := auth.NewService(nil, nil, nil, tokens, nil, logger, time.Minute, time.Hour)
	model, err := vision.NewGemini(context.Background(), "", "a", "b")
	require.NoError(t, err)

	cfg := &config.Config{Server: config.ServerConfig{
		Env:            "prod",
		TrustedOrigins: []string{"https://app.wardrobe.test"},
	}}

	env.router = NewRouter(cfg, Handlers{
		Auth:           auth.NewHandler(authService, nil, false, time.Minute, time.Hour),
		AuthMiddleware: auth.NewMiddleware(tokens),
		Gate:           gate.NewHandler(sequencer, auth.NewSessions(env.users)),
		Onboarding:     onboarding.NewHandler(onboarding.NewService(nil, cache)),
		Closet:         closet.NewHandler(closet.NewService(emptyCloset{})),
		Vision:         vision.NewHandler(model),
	}, logger)

	return env
}

func (e *routerEnv) signIn(t *testing.T, verified bool) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	u := &user.User{ID: id, Email: id.String() + "@example.com"}
	if verified {
		now := time.Now()
		u.EmailVerifiedAt = &now
	}
	e.users[id] = u

	token, err := e.tokens.CreateToken(id, u.Email, time.Minute)
	require.NoError(t, err)
	return id, token
}

func (e *routerEnv) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	env := newRouterEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/health", nil), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestGateEndpoint(t *testing.T) {
	env := newRouterEnv(t)
	_, unverified := env.signIn(t, false)
	pendingID, pending := env.signIn(t, true)
	doneID, done := env.signIn(t, true)
	env.status[pendingID] = false
	env.status[doneID] = true

	tests := []struct {
		name  string
		token string
		path  string
		want  gate.DecisionResponse
	}{
		{"anonymous", "", "/closet", gate.DecisionResponse{Decision: "redirect", Path: "/auth", ReturnTo: "/closet"}},
		{"unverified", unverified, "/closet", gate.DecisionResponse{Decision: "redirect", Path: "/verify-email"}},
		{"onboarding pending", pending, "/closet", gate.DecisionResponse{Decision: "redirect", Path: "/onboarding"}},
		{"onboarding page while pending", pending, "/onboarding", gate.DecisionResponse{Decision: "allow"}},
		{"onboarded", done, "/closet", gate.DecisionResponse{Decision: "allow"}},
		{"onboarding page when done", done, "/onboarding", gate.DecisionResponse{Decision: "redirect", Path: "/home"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(httptest.NewRequest(http.MethodGet, "/gate?path="+tt.path, nil), tt.token)
			require.Equal(t, http.StatusOK, rec.Code)

			var got gate.DecisionResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGateEndpointRejectsUnknownLevel(t *testing.T) {
	env := newRouterEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/gate?path=/home&level=admin", nil), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClosetRoutesAreGated(t *testing.T) {
	env := newRouterEnv(t)
	_, unverified := env.signIn(t, false)
	pendingID, pending := env.signIn(t, true)
	doneID, done := env.signIn(t, true)
	env.status[pendingID] = false
	env.status[doneID] = true

	tests := []struct {
		name     string
		token    string
		wantCode int
		wantErr  string
	}{
		{"anonymous", "", http.StatusUnauthorized, httputil.CodeMissingAuth},
		{"unverified", unverified, http.StatusForbidden, httputil.CodeEmailNotVerified},
		{"onboarding pending", pending, http.StatusForbidden, httputil.CodeOnboardingRequired},
		{"onboarded", done, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(httptest.NewRequest(http.MethodGet, "/closet/items", nil), tt.token)
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantErr == "" {
				return
			}
			var body gate.BlockedResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantErr, body.Code)
		})
	}
}

func TestLogoutAllRequiresToken(t *testing.T) {
	env := newRouterEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodPost, "/auth/logout-all", nil), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, httputil.CodeMissingAuth, body.Code)
}

func TestOnboardingRoutesNeedVerifiedEmail(t *testing.T) {
	env := newRouterEnv(t)
	_, unverified := env.signIn(t, false)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/onboarding/status", nil), unverified)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body gate.BlockedResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "/verify-email", body.Redirect)
}

func TestSessionEndpointAnonymous(t *testing.T) {
	env := newRouterEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/auth/session", nil), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":null}`, rec.Body.String())
}

func TestVisionCORS(t *testing.T) {
	env := newRouterEnv(t)

	preflight := httptest.NewRequest(http.MethodOptions, "/analyze-clothing", nil)
	preflight.Header.Set("Origin", "https://anywhere.example")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)
	preflight.Header.Set("Access-Control-Request-Headers", "content-type, apikey")

	rec := env.do(preflight, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = env.do(httptest.NewRequest(http.MethodOptions, "/process-clothing-image", nil), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	post := httptest.NewRequest(http.MethodPost, "/process-clothing-image", nil)
	post.Header.Set("Origin", "https://anywhere.example")
	rec = env.do(post, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestVisionMissingKeyIs500(t *testing.T) {
	env := newRouterEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/analyze-clothing", nil)
	req.Body = http.NoBody
	rec := env.do(req, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/analyze-clothing", strings.NewReader(`{"imageBase64":"aGVsbG8="}`))
	rec = env.do(req, "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, vision.ErrMissingAPIKey.Error(), body.Error)
}

func TestTrustedCORSOnAppRoutes(t *testing.T) {
	env := newRouterEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://app.wardrobe.test")
	rec := env.do(req, "")
	assert.Equal(t, "https://app.wardrobe.test", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = env.do(req, "")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
