package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	userRepo "washbook/database/repository/user"
	"washbook/models"
	"washbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// LocalProvider keeps accounts in the users collection with bcrypt hashes
// and issues its own JWTs.
type LocalProvider struct {
	Repo userRepo.UserRepository
	// Cost is the bcrypt cost; tests lower it.
	Cost int
}

func NewLocalProvider(repo userRepo.UserRepository) *LocalProvider {
	return &LocalProvider{Repo: repo, Cost: bcrypt.DefaultCost}
}

func (p *LocalProvider) SignUp(ctx context.Context, in SignUpInput) (string, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return "", ErrInvalidSignUp
	}

	existing, err := p.Repo.GetByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return "", ErrEmailAlreadyInUse
	case err != nil && !errors.Is(err, userRepo.ErrNotFound):
		return "", fmt.Errorf("signup lookup failed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), p.Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PhoneNumber:  strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
	}
	if err := p.Repo.Create(ctx, user); err != nil {
		if errors.Is(err, userRepo.ErrDuplicateEmail) {
			return "", ErrEmailAlreadyInUse
		}
		return "", err
	}

	utils.GetLogger().Info("Customer account created", zap.String("userId", user.ID))
	return user.ID, nil
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := p.Repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, userRepo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		utils.GetLogger().Error("SignIn: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Email, utils.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResponse{UserID: user.ID, Email: user.Email, Token: token}, nil
}

func (p *LocalProvider) VerifyToken(_ context.Context, token string) (string, error) {
	id, err := utils.ExtractIDFromToken(token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return id, nil
}
