package service

import (
	"context"
	"log/slog"

	"github.com/jaydeadlondon/mini-twitter/internal/apperrors"
	"github.com/jaydeadlondon/mini-twitter/internal/repository"
)

type FollowService interface {
	Follow(ctx context.Context, followerID int64, targetUsername string) (string, error)
	GetFollowingIDs(ctx context.Context, userID int64) ([]int64, error)
}

type followService struct {
	u repository.UserRepository
	f repository.FollowRepository
}

func NewFollowService(u repository.UserRepository, f repository.FollowRepository) FollowService {
	return &followService{
		u: u,
		f: f,
	}
}

// Follow creates the directed edge follower -> target. Following a user
// twice is a success no-op; the membership test is a single indexed
// existence query rather than a load of the whole following set.
func (s *followService) Follow(ctx context.Context, followerID int64, targetUsername string) (string, error) {
	target, isExist, err := s.u.GetByUsername(ctx, targetUsername)
	if err != nil {
		return "", err
	}
	if !isExist {
		err = apperrors.NotFound("User not found")
		slog.Info(err.Error())
		return "", err
	}

	if target.ID == followerID {
		err = apperrors.InvalidOperation("You cannot follow yourself")
		slog.Info(err.Error())
		return "", err
	}

	exists, err := s.f.Exists(ctx, followerID, target.ID)
	if err != nil {
		return "", err
	}
	if exists {
		return "Already following " + targetUsername, nil
	}

	if err := s.f.Create(ctx, followerID, target.ID); err != nil {
		return "", err
	}

	return "Successfully followed " + targetUsername, nil
}

func (s *followService) GetFollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.f.GetFollowingIDs(ctx, userID)
}
