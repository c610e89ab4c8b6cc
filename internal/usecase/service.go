package usecase

import (
	"pizza-delivery/internal/data/repository"
	"pizza-delivery/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth  AuthService
	User  UserService
	Order OrderService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:  NewAuthService(repo, config, log),
		User:  NewUserService(repo, log),
		Order: NewOrderService(repo, log),
	}
}
