package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abraaosantosdeveloper/taskmanager/internal/application/ports"
	"github.com/abraaosantosdeveloper/taskmanager/internal/domain"
	domerrors "github.com/abraaosantosdeveloper/taskmanager/internal/domain/errors"
	infraauth "github.com/abraaosantosdeveloper/taskmanager/internal/infrastructure/auth"
	"github.com/abraaosantosdeveloper/taskmanager/internal/infrastructure/security"
)

// memUsers is an in-memory ports.UserRepository.
type memUsers struct {
	mu   sync.Mutex
	seq  int64
	byID map[int64]domain.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[int64]domain.User)}
}

func (m *memUsers) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == user.Email {
			return domerrors.ErrEmailTaken
		}
	}
	m.seq++
	user.ID = m.seq
	m.byID[user.ID] = *user
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	out := u
	return &out, nil
}

func (m *memUsers) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, u := range m.byID {
		if u.Email == user.Email && id != user.ID {
			return domerrors.ErrEmailTaken
		}
	}
	m.byID[user.ID] = *user
	return nil
}

var _ ports.UserRepository = (*memUsers)(nil)

func testHasher() ports.PasswordHasher {
	// Minimal costs keep the test suite fast.
	return security.NewArgon2Hasher(security.Argon2Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1})
}

func testIssuer() ports.TokenIssuer {
	return infraauth.NewTokenIssuer([]byte("test-secret"), time.Hour)
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()

	users := newMemUsers()
	hasher := testHasher()
	issuer := testIssuer()
	ctx := context.Background()

	reg, err := NewRegisterUser(users, hasher, issuer).Execute(ctx, RegisterUserInput{
		Email:    "ana@example.com",
		Password: "secret1",
		Name:     "Ana",
	})
	require.NoError(t, err)
	require.NotZero(t, reg.User.ID)
	assert.NotEmpty(t, reg.Token)
	assert.NotEqual(t, "secret1", reg.User.PasswordHash)

	login, err := NewLogin(users, hasher, issuer).Execute(ctx, LoginInput{
		Email:    "ana@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	// Tokens from both flows resolve to the same identity.
	resolve := NewResolveIdentity(users, issuer)
	for _, tok := range []string{reg.Token, login.Token} {
		u, err := resolve.Execute(ctx, tok)
		require.NoError(t, err)
		assert.Equal(t, reg.User.ID, u.ID)
		assert.Equal(t, "ana@example.com", u.Email)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	users := newMemUsers()
	uc := NewRegisterUser(users, testHasher(), testIssuer())
	ctx := context.Background()

	_, err := uc.Execute(ctx, RegisterUserInput{Email: "dup@example.com", Password: "secret1", Name: "First"})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, RegisterUserInput{Email: "dup@example.com", Password: "secret2", Name: "Second"})
	assert.ErrorIs(t, err, domerrors.ErrEmailTaken)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	t.Parallel()

	uc := NewRegisterUser(newMemUsers(), testHasher(), testIssuer())
	ctx := context.Background()

	cases := []RegisterUserInput{
		{Email: "not-an-email", Password: "secret1", Name: "A"},
		{Email: "a@b.co", Password: "short", Name: "A"},
		{Email: "a@b.co", Password: "secret1", Name: ""},
	}
	for _, input := range cases {
		_, err := uc.Execute(ctx, input)
		assert.ErrorIs(t, err, domerrors.ErrInvalidInput, "input %+v", input)
	}
}

func TestLoginWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	t.Parallel()

	users := newMemUsers()
	hasher := testHasher()
	issuer := testIssuer()
	ctx := context.Background()

	_, err := NewRegisterUser(users, hasher, issuer).Execute(ctx, RegisterUserInput{
		Email: "bob@example.com", Password: "secret1", Name: "Bob",
	})
	require.NoError(t, err)

	login := NewLogin(users, hasher, issuer)
	_, errWrongPass := login.Execute(ctx, LoginInput{Email: "bob@example.com", Password: "nope"})
	_, errNoUser := login.Execute(ctx, LoginInput{Email: "ghost@example.com", Password: "secret1"})

	assert.ErrorIs(t, errWrongPass, domerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, domerrors.ErrInvalidCredentials)
	assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
}

func TestResolveIdentityVanishedUser(t *testing.T) {
	t.Parallel()

	users := newMemUsers()
	issuer := testIssuer()
	tok, err := issuer.Issue(999, "gone@example.com")
	require.NoError(t, err)

	_, err = NewResolveIdentity(users, issuer).Execute(context.Background(), tok)
	assert.ErrorIs(t, err, domerrors.ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	users := newMemUsers()
	hasher := testHasher()
	issuer := testIssuer()
	ctx := context.Background()

	reg, err := NewRegisterUser(users, hasher, issuer).Execute(ctx, RegisterUserInput{
		Email: "carla@example.com", Password: "secret1", Name: "Carla",
	})
	require.NoError(t, err)
	other, err := NewRegisterUser(users, hasher, issuer).Execute(ctx, RegisterUserInput{
		Email: "taken@example.com", Password: "secret1", Name: "Other",
	})
	require.NoError(t, err)

	uc := NewUpdateProfile(users, hasher)

	t.Run("unknown user", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpdateProfileInput{UserID: 12345, Name: "X", Email: "x@y.co"})
		assert.ErrorIs(t, err, domerrors.ErrUserNotFound)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpdateProfileInput{
			UserID: reg.User.ID, Name: "Carla", Email: other.User.Email,
		})
		assert.ErrorIs(t, err, domerrors.ErrEmailTaken)
	})

	t.Run("new password requires current password", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpdateProfileInput{
			UserID: reg.User.ID, Name: "Carla", Email: reg.User.Email, NewPassword: "newsecret",
		})
		assert.ErrorIs(t, err, domerrors.ErrInvalidInput)
	})

	t.Run("new password too short", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpdateProfileInput{
			UserID: reg.User.ID, Name: "Carla", Email: reg.User.Email,
			CurrentPassword: "secret1", NewPassword: "tiny",
		})
		assert.ErrorIs(t, err, domerrors.ErrInvalidInput)
	})

	t.Run("successful change logs in with new credentials", func(t *testing.T) {
		updated, err := uc.Execute(ctx, UpdateProfileInput{
			UserID: reg.User.ID, Name: "Carla M", Email: "carla.m@example.com",
			CurrentPassword: "secret1", NewPassword: "newsecret",
		})
		require.NoError(t, err)
		assert.Equal(t, "Carla M", updated.Name)

		login, err := NewLogin(users, hasher, issuer).Execute(ctx, LoginInput{
			Email: "carla.m@example.com", Password: "newsecret",
		})
		require.NoError(t, err)
		assert.Equal(t, reg.User.ID, login.User.ID)
	})
}
