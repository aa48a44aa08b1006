package account

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidSignUp      = errors.New("email and password are required")
	// ErrNotSupported is returned by providers whose clients authenticate
	// outside this service.
	ErrNotSupported = errors.New("operation not supported by this account provider")
)

// SignUpInput is the data needed to register a customer.
type SignUpInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// AuthResponse is returned after a successful sign-in.
type AuthResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// Provider creates and authenticates customer accounts.
type Provider interface {
	// SignUp registers a customer and returns the new user id. A taken
	// email fails with ErrEmailAlreadyInUse.
	SignUp(ctx context.Context, in SignUpInput) (string, error)
	SignIn(ctx context.Context, email, password string) (*AuthResponse, error)
	// VerifyToken returns the user id a bearer token belongs to.
	VerifyToken(ctx context.Context, token string) (string, error)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
