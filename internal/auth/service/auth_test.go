package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/prozessdok/prozessdok-backend/internal/auth/jwt"
	"github.com/prozessdok/prozessdok-backend/internal/auth/repository"
	"github.com/prozessdok/prozessdok-backend/internal/auth/service"
	"github.com/prozessdok/prozessdok-backend/pkg/config"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
	"github.com/prozessdok/prozessdok-backend/pkg/logger"
	"github.com/prozessdok/prozessdok-backend/pkg/testutil"
)

type fakeUserStore struct {
	users map[string]*repository.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*repository.User)}
}

func (s *fakeUserStore) add(u *repository.User) {
	s.users[u.ID] = u
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, errors.NotFound("user")
}

func (s *fakeUserStore) GetByID(ctx context.Context, id string) (*repository.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, errors.NotFound("user")
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	u, ok := s.users[id]
	if !ok {
		return errors.NotFound("user")
	}
	u.PasswordHash = passwordHash
	return nil
}

func newTestService(t *testing.T) (*service.AuthService, *fakeUserStore, *repository.User) {
	t.Helper()

	store := newFakeUserStore()
	fixture := testutil.NewFixtureFactory().User("geheim123")
	user := &repository.User{
		ID:           fixture.ID,
		Email:        fixture.Email,
		PasswordHash: fixture.PasswordHash,
		Name:         fixture.Name,
		Role:         fixture.Role,
		Active:       true,
	}
	store.add(user)

	manager := jwt.NewManager(&config.JWTConfig{
		Secret:       "test-secret",
		AccessExpiry: time.Hour,
		Issuer:       "prozessdok-test",
	})

	return service.NewAuthService(store, manager, logger.New("test", "test")), store, user
}

func TestLogin_Success(t *testing.T) {
	svc, _, user := newTestService(t)

	resp, err := svc.Login(context.Background(), &service.LoginRequest{
		Email:    user.Email,
		Password: "geheim123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, user.Email, resp.User.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, user := newTestService(t)

	_, err := svc.Login(context.Background(), &service.LoginRequest{
		Email:    user.Email,
		Password: "falsch",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), &service.LoginRequest{
		Email:    "niemand@example.com",
		Password: "geheim123",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
}

func TestLogin_InactiveUserRejected(t *testing.T) {
	svc, store, user := newTestService(t)
	store.users[user.ID].Active = false

	_, err := svc.Login(context.Background(), &service.LoginRequest{
		Email:    user.Email,
		Password: "geheim123",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
}

func TestGetCurrentUser(t *testing.T) {
	svc, _, user := newTestService(t)

	info, err := svc.GetCurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Name, info.Name)
}

func TestChangePassword(t *testing.T) {
	svc, store, user := newTestService(t)

	err := svc.ChangePassword(context.Background(), user.ID, &service.ChangePasswordRequest{
		CurrentPassword: "geheim123",
		NewPassword:     "nochGeheimer456",
	})
	require.NoError(t, err)

	stored := store.users[user.ID]
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("nochGeheimer456")))
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	svc, _, user := newTestService(t)

	err := svc.ChangePassword(context.Background(), user.ID, &service.ChangePasswordRequest{
		CurrentPassword: "falsch",
		NewPassword:     "nochGeheimer456",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
}
