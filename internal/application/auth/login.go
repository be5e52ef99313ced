package auth

import (
	"context"

	"github.com/abraaosantosdeveloper/taskmanager/internal/application/ports"
	"github.com/abraaosantosdeveloper/taskmanager/internal/domain"
	domerrors "github.com/abraaosantosdeveloper/taskmanager/internal/domain/errors"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	User  *domain.User
	Token string
}

type Login struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *Login {
	return &Login{users: users, hasher: hasher, issuer: issuer}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	// Unknown email and wrong password are indistinguishable to the caller.
	if user == nil || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	token, err := uc.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Token: token}, nil
}
