package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ovalhall/meeting-scheduler-backend/internal/auth"
)

type memoryRepository struct {
	seq   int
	users map[string]*User // keyed by ID
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{users: map[string]*User{}}
}

func (m *memoryRepository) GetByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range m.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryRepository) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (m *memoryRepository) Create(_ context.Context, u *User) error {
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return ErrUsernameTaken
		}
		if existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	m.seq++
	u.ID = fmt.Sprintf("user-%d", m.seq)
	u.CreatedAt = time.Now().UTC()
	m.users[u.ID] = u
	return nil
}

func (m *memoryRepository) Update(_ context.Context, u *User) error {
	if _, ok := m.users[u.ID]; !ok {
		return ErrNotFound
	}
	m.users[u.ID] = u
	return nil
}

func (m *memoryRepository) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func (m *memoryRepository) UpdateAvatar(_ context.Context, id string, fileID string) error {
	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.AvatarFileID = &fileID
	return nil
}

func newTestService() (Service, *memoryRepository) {
	repo := newMemoryRepository()
	hasher := auth.NewBcryptPasswordHasherWithCost(bcrypt.MinCost)
	return NewService(repo, hasher, zap.NewNop()), repo
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.Register(context.Background(), "robo1", "Robo1@Example.com", "demobro123", "Robo One")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "robo1", u.Username)
	assert.Equal(t, "robo1@example.com", u.Email, "email is normalized")
	require.NotNil(t, u.DisplayName)
	assert.Equal(t, "Robo One", *u.DisplayName)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "demobro123", u.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{"username too short", "ab", "a@a.com", "demobro123", ErrUsernameRequired},
		{"username bad characters", "robo one", "a@a.com", "demobro123", ErrUsernameRequired},
		{"email missing", "robo1", "   ", "demobro123", ErrEmailRequired},
		{"password too short", "robo1", "a@a.com", "short", ErrPasswordTooShort},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.email, tc.password, "")
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestRegisterUsernameTaken(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "robo1", "a@a.com", "demobro123", "")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "robo1", "b@b.com", "demobro123", "")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "robo1", "a@a.com", "demobro123", "")
	require.NoError(t, err)

	got, err := svc.Login(ctx, "robo1", "demobro123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NotNil(t, repo.users[u.ID].LastLoginAt)
}

func TestLoginFailures(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "robo1", "a@a.com", "demobro123", "")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "robo1", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "demobro123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	repo.users[u.ID].IsActive = false
	_, err = svc.Login(ctx, "robo1", "demobro123")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "robo1", "a@a.com", "demobro123", "Robo One")
	require.NoError(t, err)

	newEmail := "New@Example.com"
	updated, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileRequest{Email: &newEmail})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	require.NotNil(t, updated.DisplayName, "display name untouched by partial update")
	assert.Equal(t, "Robo One", *updated.DisplayName)

	// blank display name clears it
	blank := "   "
	updated, err = svc.UpdateProfile(ctx, u.ID, UpdateProfileRequest{DisplayName: &blank})
	require.NoError(t, err)
	assert.Nil(t, updated.DisplayName)
}

func TestSetAvatar(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "robo1", "a@a.com", "demobro123", "")
	require.NoError(t, err)

	require.NoError(t, svc.SetAvatar(ctx, u.ID, "file-123"))
	require.NotNil(t, repo.users[u.ID].AvatarFileID)
	assert.Equal(t, "file-123", *repo.users[u.ID].AvatarFileID)
}
