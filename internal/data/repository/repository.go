package repository

import (
	"errors"
	"fmt"

	"pizza-delivery/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=repomock/mock_repository.go -package=repomock pizza-delivery/internal/data/repository UserRepository,OrderRepository

// ErrDuplicate is returned when an insert violates a unique constraint.
// The column specific errors below wrap it.
var (
	ErrDuplicate         = errors.New("duplicate record")
	ErrDuplicateUsername = fmt.Errorf("%w: username", ErrDuplicate)
	ErrDuplicateEmail    = fmt.Errorf("%w: email", ErrDuplicate)
)

// unique constraint names from the users migration
const (
	usersUsernameKey = "users_username_key"
	usersEmailKey    = "users_email_key"
)

type Repository struct {
	User  UserRepository
	Order OrderRepository
	Tx    database.Transactor
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:  NewUserRepository(db, log),
		Order: NewOrderRepository(db, log),
		Tx:    database.NewTransactor(db, log),
	}
}

// uniqueViolation reports whether err is a unique violation and on which constraint.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName, true
	}
	return "", false
}
