package service

import (
	"context"
	"log/slog"

	"github.com/jaydeadlondon/mini-twitter/internal/apperrors"
	"github.com/jaydeadlondon/mini-twitter/internal/repository"
	"github.com/jaydeadlondon/mini-twitter/internal/transfer"
)

type UserService interface {
	GetUserInfo(ctx context.Context, id int64) (*transfer.UserResponse, error)
}

type userService struct {
	u repository.UserRepository
}

func NewUserService(u repository.UserRepository) UserService {
	return &userService{
		u: u,
	}
}

func (s *userService) GetUserInfo(ctx context.Context, id int64) (*transfer.UserResponse, error) {
	user, isExist, err := s.u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isExist {
		err = apperrors.NotFound("User not found")
		slog.Info(err.Error())
		return nil, err
	}

	return &transfer.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Bio:      user.Bio,
	}, nil
}
