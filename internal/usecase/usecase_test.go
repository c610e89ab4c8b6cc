package usecase

import (
	"context"
	"testing"

	"pizza-delivery/internal/data/entity"
	"pizza-delivery/internal/data/repository"
	"pizza-delivery/internal/data/repository/repomock"
	"pizza-delivery/pkg/utils"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"go.uber.org/zap"
)

// passTx runs fn directly; the real transactor is covered in pkg/database.
type passTx struct {
	calls int
}

func (p *passTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

type fixture struct {
	users  *repomock.MockUserRepository
	orders *repomock.MockOrderRepository
	tx     *passTx
	repo   *repository.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		users:  repomock.NewMockUserRepository(ctrl),
		orders: repomock.NewMockOrderRepository(ctrl),
		tx:     &passTx{},
	}
	f.repo = &repository.Repository{User: f.users, Order: f.orders, Tx: f.tx}
	return f
}

func (f *fixture) orderService() OrderService {
	return NewOrderService(f.repo, zap.NewNop())
}

func (f *fixture) expectUser(user *entity.User) {
	f.users.EXPECT().FindByUsername(gomock.Any(), user.Username).Return(user, nil)
}

func fakeUser(id int64, staff bool) *entity.User {
	return &entity.User{
		Base:     entity.Base{ID: id},
		Username: gofakeit.Username(),
		Email:    gofakeit.Email(),
		IsStaff:  staff,
		IsActive: true,
	}
}

func testConfig() *utils.Config {
	return &utils.Config{
		JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1, RefreshExpiryHours: 2},
	}
}
