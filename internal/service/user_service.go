package service

import (
	"context"

	"forkful/internal/models"
	"forkful/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int, currentUserID uint) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset, currentUserID)
}

func (s *UserService) GetProfile(ctx context.Context, id, currentUserID uint) (*models.User, error) {
	return s.userRepo.GetProfile(ctx, id, currentUserID)
}
