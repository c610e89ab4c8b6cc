package usecase

import (
	"context"
	"fmt"
	"testing"

	"pizza-delivery/internal/data/entity"
	"pizza-delivery/internal/data/repository"
	"pizza-delivery/internal/dto/request"
	"pizza-delivery/pkg/utils"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()
	req := func() *request.SignUpRequest {
		return &request.SignUpRequest{
			Username: "alice" + gofakeit.DigitN(3),
			Email:    gofakeit.Email(),
			Password: gofakeit.Password(true, true, true, false, false, 10),
		}
	}

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		r := req()
		f.users.EXPECT().FindByUsername(gomock.Any(), r.Username).Return(nil, nil)
		f.users.EXPECT().FindByEmail(gomock.Any(), r.Email).Return(nil, nil)
		f.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u *entity.User) error {
				assert.False(t, u.IsStaff)
				assert.True(t, u.IsActive)
				assert.NotEqual(t, r.Password, u.PasswordHash)
				u.ID = 1
				return nil
			})

		resp, err := NewAuthService(f.repo, testConfig(), zap.NewNop()).SignUp(ctx, r)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, r.Username, resp.Username)
	})

	t.Run("UsernameTaken", func(t *testing.T) {
		f := newFixture(t)
		r := req()
		f.users.EXPECT().FindByUsername(gomock.Any(), r.Username).Return(fakeUser(2, false), nil)

		_, err := NewAuthService(f.repo, testConfig(), zap.NewNop()).SignUp(ctx, r)
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		f := newFixture(t)
		r := req()
		f.users.EXPECT().FindByUsername(gomock.Any(), r.Username).Return(nil, nil)
		f.users.EXPECT().FindByEmail(gomock.Any(), r.Email).Return(fakeUser(2, false), nil)

		_, err := NewAuthService(f.repo, testConfig(), zap.NewNop()).SignUp(ctx, r)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("RaceOnInsert", func(t *testing.T) {
		f := newFixture(t)
		r := req()
		f.users.EXPECT().FindByUsername(gomock.Any(), r.Username).Return(nil, nil)
		f.users.EXPECT().FindByEmail(gomock.Any(), r.Email).Return(nil, nil)
		f.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(repository.ErrDuplicateUsername)

		_, err := NewAuthService(f.repo, testConfig(), zap.NewNop()).SignUp(ctx, r)
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("EmailRaceOnInsert", func(t *testing.T) {
		f := newFixture(t)
		r := req()
		f.users.EXPECT().FindByUsername(gomock.Any(), r.Username).Return(nil, nil)
		f.users.EXPECT().FindByEmail(gomock.Any(), r.Email).Return(nil, nil)
		f.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(
			fmt.Errorf("create user %s: %w", r.Username, repository.ErrDuplicateEmail))

		_, err := NewAuthService(f.repo, testConfig(), zap.NewNop()).SignUp(ctx, r)
		assert.ErrorIs(t, err, ErrEmailTaken)
		assert.NotErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("BadEmail", func(t *testing.T) {
		f := newFixture(t)
		r := req()
		r.Email = "not-an-email"

		_, err := NewAuthService(f.repo, testConfig(), zap.NewNop()).SignUp(ctx, r)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		alice := fakeUser(7, false)
		alice.PasswordHash = hash
		f.expectUser(alice)

		tokens, err := NewAuthService(f.repo, cfg, zap.NewNop()).Login(ctx, &request.LoginRequest{
			Username: alice.Username,
			Password: "secret123",
		})
		require.NoError(t, err)

		subject, err := utils.ParseToken(cfg.JWT, tokens.Access, utils.TokenAccess)
		require.NoError(t, err)
		assert.Equal(t, alice.Username, subject)

		subject, err = utils.ParseToken(cfg.JWT, tokens.Refresh, utils.TokenRefresh)
		require.NoError(t, err)
		assert.Equal(t, alice.Username, subject)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		f := newFixture(t)
		alice := fakeUser(7, false)
		alice.PasswordHash = hash
		f.expectUser(alice)

		_, err := NewAuthService(f.repo, cfg, zap.NewNop()).Login(ctx, &request.LoginRequest{
			Username: alice.Username,
			Password: "nope",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().FindByUsername(gomock.Any(), "ghost").Return(nil, nil)

		_, err := NewAuthService(f.repo, cfg, zap.NewNop()).Login(ctx, &request.LoginRequest{
			Username: "ghost",
			Password: "secret123",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Inactive", func(t *testing.T) {
		f := newFixture(t)
		alice := fakeUser(7, false)
		alice.PasswordHash = hash
		alice.IsActive = false
		f.expectUser(alice)

		_, err := NewAuthService(f.repo, cfg, zap.NewNop()).Login(ctx, &request.LoginRequest{
			Username: alice.Username,
			Password: "secret123",
		})
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig()
	alice := fakeUser(7, false)
	f.expectUser(alice)

	tokens, err := NewAuthService(f.repo, cfg, zap.NewNop()).Refresh(context.Background(), alice.Username)
	require.NoError(t, err)
	assert.Empty(t, tokens.Refresh)

	subject, err := utils.ParseToken(cfg.JWT, tokens.Access, utils.TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, alice.Username, subject)
}

func TestUserService(t *testing.T) {
	ctx := context.Background()

	t.Run("Profile", func(t *testing.T) {
		f := newFixture(t)
		alice := fakeUser(7, false)
		f.expectUser(alice)

		resp, err := NewUserService(f.repo, zap.NewNop()).GetProfile(ctx, alice.Username)
		require.NoError(t, err)
		assert.Equal(t, alice.Email, resp.Email)
		assert.False(t, resp.IsStaff)
	})

	t.Run("CreateStaff", func(t *testing.T) {
		f := newFixture(t)
		r := &request.CreateStaffRequest{Username: "bob", Email: "bob@example.com", Password: "secret123"}
		f.users.EXPECT().FindByUsername(gomock.Any(), "bob").Return(nil, nil)
		f.users.EXPECT().FindByEmail(gomock.Any(), "bob@example.com").Return(nil, nil)
		f.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u *entity.User) error {
				u.ID = 2
				return nil
			})

		resp, err := NewUserService(f.repo, zap.NewNop()).CreateStaff(ctx, r)
		require.NoError(t, err)
		assert.True(t, resp.IsStaff)
		assert.Equal(t, int64(2), resp.ID)
	})
}
