package usecase

import (
	"context"

	"pizza-delivery/internal/data/repository"
	"pizza-delivery/internal/dto/request"
	"pizza-delivery/internal/dto/response"
	"pizza-delivery/pkg/database"

	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, subject string) (*response.UserResponse, error)
	CreateStaff(ctx context.Context, req *request.CreateStaffRequest) (*response.UserResponse, error)
}

type userService struct {
	users  repository.UserRepository
	tx     database.Transactor
	policy policy
	log    *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		users:  repo.User,
		tx:     repo.Tx,
		policy: policy{users: repo.User},
		log:    log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, subject string) (*response.UserResponse, error) {
	user, err := s.policy.currentUser(ctx, subject)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) CreateStaff(ctx context.Context, req *request.CreateStaffRequest) (*response.UserResponse, error) {
	user, err := registerUser(ctx, s.users, s.tx, req, true)
	if err != nil {
		s.log.Error("Failed to create staff user", zap.Error(err), zap.String("username", req.Username))
		return nil, err
	}

	s.log.Info("Staff user created", zap.Int64("user_id", user.ID), zap.String("username", user.Username))

	resp := response.UserToResponse(user)
	return &resp, nil
}
