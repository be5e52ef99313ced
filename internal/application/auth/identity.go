package auth

import (
	"context"

	"github.com/abraaosantosdeveloper/taskmanager/internal/application/ports"
	"github.com/abraaosantosdeveloper/taskmanager/internal/domain"
	domerrors "github.com/abraaosantosdeveloper/taskmanager/internal/domain/errors"
)

// ResolveIdentity turns a bearer token into the current user. Token failures
// pass through unchanged; a token for a user that no longer exists yields
// ErrUserNotFound.
type ResolveIdentity struct {
	users  ports.UserRepository
	issuer ports.TokenIssuer
}

func NewResolveIdentity(users ports.UserRepository, issuer ports.TokenIssuer) *ResolveIdentity {
	return &ResolveIdentity{users: users, issuer: issuer}
}

func (uc *ResolveIdentity) Execute(ctx context.Context, token string) (*domain.User, error) {
	claims, err := uc.issuer.Validate(token)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	return user, nil
}
