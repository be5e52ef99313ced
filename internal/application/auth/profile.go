package auth

import (
	"context"

	"github.com/abraaosantosdeveloper/taskmanager/internal/application/ports"
	"github.com/abraaosantosdeveloper/taskmanager/internal/domain"
	domerrors "github.com/abraaosantosdeveloper/taskmanager/internal/domain/errors"
)

type UpdateProfileInput struct {
	UserID int64
	Name   string
	Email  string
	// CurrentPassword is required when NewPassword is set.
	CurrentPassword string
	NewPassword     string
}

type UpdateProfile struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
}

func NewUpdateProfile(users ports.UserRepository, hasher ports.PasswordHasher) *UpdateProfile {
	return &UpdateProfile{users: users, hasher: hasher}
}

func (uc *UpdateProfile) Execute(ctx context.Context, input UpdateProfileInput) (*domain.User, error) {
	if input.Name == "" || !emailRegex.MatchString(input.Email) {
		return nil, domerrors.ErrInvalidInput
	}
	user, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	if input.Email != user.Email {
		taken, err := uc.users.GetByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if taken != nil && taken.ID != user.ID {
			return nil, domerrors.ErrEmailTaken
		}
	}
	if input.NewPassword != "" {
		if input.CurrentPassword == "" || !uc.hasher.Verify(input.CurrentPassword, user.PasswordHash) {
			return nil, domerrors.ErrInvalidInput
		}
		if len(input.NewPassword) < MinPasswordLength {
			return nil, domerrors.ErrInvalidInput
		}
		hash, err := uc.hasher.Hash(input.NewPassword)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.Name = input.Name
	user.Email = input.Email
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
