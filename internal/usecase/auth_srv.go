package usecase

import (
	"context"
	"errors"
	"fmt"

	"pizza-delivery/internal/data/entity"
	"pizza-delivery/internal/data/repository"
	"pizza-delivery/internal/dto/request"
	"pizza-delivery/internal/dto/response"
	"pizza-delivery/pkg/database"
	"pizza-delivery/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	SignUp(ctx context.Context, req *request.SignUpRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error)
	// Refresh issues a new access token for the subject of a verified refresh token.
	Refresh(ctx context.Context, subject string) (*response.TokenResponse, error)
}

type authService struct {
	users  repository.UserRepository
	tx     database.Transactor
	policy policy
	jwt    utils.JWTConfig
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		users:  repo.User,
		tx:     repo.Tx,
		policy: policy{users: repo.User},
		jwt:    config.JWT,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) SignUp(ctx context.Context, req *request.SignUpRequest) (*response.UserResponse, error) {
	user, err := registerUser(ctx, s.users, s.tx, req, false)
	if err != nil {
		s.log.Warn("Sign up failed", zap.Error(err), zap.String("username", req.Username))
		return nil, err
	}

	s.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("find user: %w", err)
	}

	// unknown user and wrong password look the same to the caller
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid login attempt", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.Int64("user_id", user.ID))
		return nil, ErrInactiveUser
	}

	access, accessExp, err := utils.GenerateToken(s.jwt, user.Username, utils.TokenAccess)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := utils.GenerateToken(s.jwt, user.Username, utils.TokenRefresh)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.Int64("user_id", user.ID), zap.String("username", user.Username))

	return &response.TokenResponse{
		Access:           access,
		Refresh:          refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (s *authService) Refresh(ctx context.Context, subject string) (*response.TokenResponse, error) {
	user, err := s.policy.currentUser(ctx, subject)
	if err != nil {
		return nil, err
	}

	access, exp, err := utils.GenerateToken(s.jwt, user.Username, utils.TokenAccess)
	if err != nil {
		return nil, err
	}

	return &response.TokenResponse{Access: access, AccessExpiresAt: exp}, nil
}

// registerUser validates, checks uniqueness and stores a new active user.
// Shared by public sign up and the createstaff command.
func registerUser(
	ctx context.Context,
	users repository.UserRepository,
	tx database.Transactor,
	req *request.SignUpRequest,
	staff bool,
) (*entity.User, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		IsStaff:      staff,
		IsActive:     true,
	}

	err = tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := users.FindByUsername(ctx, req.Username)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if existing != nil {
			return ErrUsernameTaken
		}

		existing, err = users.FindByEmail(ctx, req.Email)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if existing != nil {
			return ErrEmailTaken
		}

		if err := users.Create(ctx, user); err != nil {
			// lost a race with a concurrent sign up
			switch {
			case errors.Is(err, repository.ErrDuplicateEmail):
				return ErrEmailTaken
			case errors.Is(err, repository.ErrDuplicate):
				return ErrUsernameTaken
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}
