package userRepo

import (
	"context"
	"errors"

	"washbook/models"
)

var (
	// ErrDuplicateEmail is returned by Create when the email is taken.
	ErrDuplicateEmail = errors.New("email already registered")
	ErrNotFound       = errors.New("user not found")
)

// UserRepository defines methods for customer data access.
type UserRepository interface {
	// GetByID returns (nil, nil) when no user has the id.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail returns ErrNotFound when no user has the email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
}
