package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/redmonkez12/wardrobe-api/internal/logging"
	"github.com/redmonkez12/wardrobe-api/internal/user"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*user.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[uuid.UUID]*user.User{}}
}

func (m *memoryUsers) find(match func(*user.User) bool) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (m *memoryUsers) Create(_ context.Context, email, passwordHash, token string) (*user.User, error) {
	if _, err := m.GetByEmail(context.Background(), email); err == nil {
		return nil, user.ErrDuplicateEmail
	}
	now := time.Now()
	u := &user.User{
		ID:                      uuid.New(),
		Email:                   email,
		PasswordHash:            passwordHash,
		EmailVerificationToken:  &token,
		EmailVerificationSentAt: &now,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	m.mu.Lock()
	m.users[u.ID] = u
	m.mu.Unlock()
	cp := *u
	return &cp, nil
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*user.User, error) {
	return m.find(func(u *user.User) bool { return u.Email == email })
}

func (m *memoryUsers) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return m.find(func(u *user.User) bool { return u.ID == id })
}

func (m *memoryUsers) GetByVerificationToken(_ context.Context, token string) (*user.User, error) {
	return m.find(func(u *user.User) bool {
		return u.EmailVerifiedAt == nil && u.EmailVerificationToken != nil && *u.EmailVerificationToken == token
	})
}

func (m *memoryUsers) update(id uuid.UUID, fn func(*user.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return user.ErrNotFound
	}
	fn(u)
	return nil
}

func (m *memoryUsers) MarkEmailAsVerified(_ context.Context, id uuid.UUID) error {
	return m.update(id, func(u *user.User) {
		now := time.Now()
		u.EmailVerifiedAt = &now
		u.EmailVerificationToken = nil
		u.EmailVerificationSentAt = nil
	})
}

func (m *memoryUsers) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	return m.update(id, func(u *user.User) { u.PasswordHash = hash })
}

func (m *memoryUsers) UpdateVerificationToken(_ context.Context, id uuid.UUID, token string) error {
	return m.update(id, func(u *user.User) {
		now := time.Now()
		u.EmailVerificationToken = &token
		u.EmailVerificationSentAt = &now
	})
}

type sentEmail struct {
	kind, to, token string
}

type recordingEmail struct {
	sent chan sentEmail
}

func newRecordingEmail() *recordingEmail {
	return &recordingEmail{sent: make(chan sentEmail, 8)}
}

func (e *recordingEmail) SendVerificationEmail(_ context.Context, to, token string) error {
	e.sent <- sentEmail{"verification", to, token}
	return nil
}

func (e *recordingEmail) SendPasswordResetEmail(_ context.Context, to, token string) error {
	e.sent <- sentEmail{"reset", to, token}
	return nil
}

func (e *recordingEmail) next(t *testing.T) sentEmail {
	t.Helper()
	select {
	case m := <-e.sent:
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("no email sent")
		return sentEmail{}
	}
}

type testEnv struct {
	service *Service
	users   *memoryUsers
	email   *recordingEmail
	tokens  TokenService
	redis   *redis.Client
	mr      *miniredis.Miniredis
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	tokens, err := NewPasetoService(testKey)
	if err != nil {
		t.Fatal(err)
	}

	env := &testEnv{
		users:  newMemoryUsers(),
		email:  newRecordingEmail(),
		tokens: tokens,
		redis:  client,
		mr:     mr,
	}
	env.service = NewService(
		env.users,
		NewRedisRepository(client),
		NewPasswordResetRepository(client),
		tokens,
		env.email,
		logging.NewLogger(true),
		15*time.Minute,
		24*time.Hour,
	)
	return env
}
