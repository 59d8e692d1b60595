package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jaydeadlondon/mini-twitter/internal/apperrors"
	"github.com/jaydeadlondon/mini-twitter/internal/models"
	"github.com/jaydeadlondon/mini-twitter/internal/repository"
	"github.com/jaydeadlondon/mini-twitter/internal/transfer"
	"github.com/jaydeadlondon/mini-twitter/pkg/utils"
)

type AuthService interface {
	Register(ctx context.Context, reg *transfer.UserRegistration) (*transfer.UserResponse, error)
	Login(ctx context.Context, login *transfer.UserLogin) (*models.User, error)
}

type authService struct {
	u repository.UserRepository
}

func NewAuthService(u repository.UserRepository) AuthService {
	return &authService{
		u: u,
	}
}

func (s *authService) Register(ctx context.Context, reg *transfer.UserRegistration) (*transfer.UserResponse, error) {
	username := strings.TrimSpace(reg.Username)
	email := strings.TrimSpace(reg.Email)

	if username == "" || email == "" || reg.Password == "" {
		return nil, apperrors.InvalidOperation("username, email and password are required")
	}

	taken, err := s.u.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if taken {
		err = apperrors.Conflict("Username or Email already registered")
		slog.Info(err.Error())
		return nil, err
	}

	hash, err := utils.HashPassword(reg.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Bio:          reg.Bio,
	}

	id, err := s.u.Create(ctx, nil, &user)
	if err != nil {
		return nil, err
	}

	return &transfer.UserResponse{
		ID:       id,
		Username: user.Username,
		Email:    user.Email,
		Bio:      user.Bio,
	}, nil
}

func (s *authService) Login(ctx context.Context, login *transfer.UserLogin) (*models.User, error) {
	user, isExist, err := s.u.GetByUsername(ctx, login.Username)
	if err != nil {
		return nil, err
	}

	if !isExist || !utils.VerifyPassword(user.PasswordHash, login.Password) {
		err = apperrors.Unauthorized("Incorrect username or password")
		slog.Info(err.Error())
		return nil, err
	}

	return user, nil
}
