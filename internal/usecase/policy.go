package usecase

import (
	"context"
	"fmt"

	"pizza-delivery/internal/data/entity"
	"pizza-delivery/internal/data/repository"
)

// policy resolves the caller from the token subject and applies the
// self, staff and owner checks shared by every order operation.
type policy struct {
	users repository.UserRepository
}

// currentUser looks the subject up on every call so that revoked staff rights
// or deactivated accounts take effect immediately.
func (p policy) currentUser(ctx context.Context, subject string) (*entity.User, error) {
	if subject == "" {
		return nil, ErrUnauthenticated
	}

	user, err := p.users.FindByUsername(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("resolve current user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, subject)
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	return user, nil
}

// requireStaff returns denied when the caller is not staff.
func (p policy) requireStaff(ctx context.Context, subject string, denied error) (*entity.User, error) {
	user, err := p.currentUser(ctx, subject)
	if err != nil {
		return nil, err
	}
	if !user.IsStaff {
		return nil, denied
	}
	return user, nil
}

func canModify(user *entity.User, order *entity.Order) bool {
	return order.OwnedBy(user.ID)
}

func canDelete(user *entity.User, order *entity.Order) bool {
	return user.IsStaff || order.OwnedBy(user.ID)
}
