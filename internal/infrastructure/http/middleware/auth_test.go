package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abraaosantosdeveloper/taskmanager/internal/application/auth"
	"github.com/abraaosantosdeveloper/taskmanager/internal/application/ports"
	"github.com/abraaosantosdeveloper/taskmanager/internal/domain"
	infraauth "github.com/abraaosantosdeveloper/taskmanager/internal/infrastructure/auth"
)

type singleUserRepo struct {
	user *domain.User
}

func (r *singleUserRepo) Create(context.Context, *domain.User) error { return nil }
func (r *singleUserRepo) Update(context.Context, *domain.User) error { return nil }

func (r *singleUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.user != nil && r.user.Email == email {
		return r.user, nil
	}
	return nil, nil
}

func (r *singleUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, nil
}

var _ ports.UserRepository = (*singleUserRepo)(nil)

func gateFor(t *testing.T, repo ports.UserRepository, issuer ports.TokenIssuer) http.Handler {
	t.Helper()
	gate := NewRequestGate(auth.NewResolveIdentity(repo, issuer), zerolog.Nop())
	return gate.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		require.NotNil(t, user)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(user.Email))
	}))
}

func TestRequestGate(t *testing.T) {
	t.Parallel()

	issuer := infraauth.NewTokenIssuer([]byte("gate-secret"), time.Hour)
	user := &domain.User{ID: 5, Email: "gate@example.com", Name: "Gate"}
	handler := gateFor(t, &singleUserRepo{user: user}, issuer)

	token, err := issuer.Issue(user.ID, user.Email)
	require.NoError(t, err)

	cases := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"no token after scheme", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, user.Email, rec.Body.String())
			} else {
				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, false, body["success"])
				assert.NotEmpty(t, body["message"])
			}
		})
	}
}

func TestRequestGateExpiredAndVanishedUser(t *testing.T) {
	t.Parallel()

	issuer := infraauth.NewTokenIssuer([]byte("gate-secret"), time.Hour)
	user := &domain.User{ID: 5, Email: "gate@example.com"}

	t.Run("expired token", func(t *testing.T) {
		expired := infraauth.NewTokenIssuer([]byte("gate-secret"), -time.Minute)
		tok, err := expired.Issue(user.ID, user.Email)
		require.NoError(t, err)

		handler := gateFor(t, &singleUserRepo{user: user}, issuer)
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "expired")
	})

	t.Run("user deleted after issuance", func(t *testing.T) {
		tok, err := issuer.Issue(user.ID, user.Email)
		require.NoError(t, err)

		handler := gateFor(t, &singleUserRepo{}, issuer)
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

// failingUserRepo simulates a store outage.
type failingUserRepo struct {
	singleUserRepo
	err error
}

func (r *failingUserRepo) GetByID(context.Context, int64) (*domain.User, error) {
	return nil, r.err
}

func TestRequestGateStoreFailure(t *testing.T) {
	t.Parallel()

	issuer := infraauth.NewTokenIssuer([]byte("gate-secret"), time.Hour)
	tok, err := issuer.Issue(5, "gate@example.com")
	require.NoError(t, err)

	storeErr := errors.New("failed to connect to `host=db-internal user=postgres`: dial error")
	handler := gateFor(t, &failingUserRepo{err: storeErr}, issuer)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db-internal")
	assert.NotContains(t, rec.Body.String(), "dial error")

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Authentication failed", body["message"])
}
