package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/abraaosantosdeveloper/taskmanager/internal/application/ports"
	"github.com/abraaosantosdeveloper/taskmanager/internal/domain"
	domerrors "github.com/abraaosantosdeveloper/taskmanager/internal/domain/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// MinPasswordLength applies to registration and password changes.
const MinPasswordLength = 6

type RegisterUserInput struct {
	Email    string
	Password string
	Name     string
}

type RegisterUserResult struct {
	User  *domain.User
	Token string
}

type RegisterUser struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

func NewRegisterUser(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *RegisterUser {
	return &RegisterUser{users: users, hasher: hasher, issuer: issuer}
}

func (uc *RegisterUser) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserResult, error) {
	if !emailRegex.MatchString(input.Email) || input.Name == "" || len(input.Password) < MinPasswordLength {
		return nil, domerrors.ErrInvalidInput
	}
	existing, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrEmailTaken
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	token, err := uc.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &RegisterUserResult{User: user, Token: token}, nil
}
