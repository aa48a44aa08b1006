package account

import (
	"context"
	"fmt"
	"strings"

	userRepo "washbook/database/repository/user"
	"washbook/models"
	"washbook/utils"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
)

// FirebaseAuth is the part of *auth.Client the provider needs.
type FirebaseAuth interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseProvider creates accounts in Firebase Auth and mirrors the
// profile, including the wallet, into the users collection.
type FirebaseProvider struct {
	Client FirebaseAuth
	Repo   userRepo.UserRepository
}

func NewFirebaseProvider(client FirebaseAuth, repo userRepo.UserRepository) *FirebaseProvider {
	return &FirebaseProvider{Client: client, Repo: repo}
}

func (p *FirebaseProvider) SignUp(ctx context.Context, in SignUpInput) (string, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return "", ErrInvalidSignUp
	}

	params := (&auth.UserToCreate{}).Email(email).Password(in.Password)
	if name := strings.TrimSpace(in.FirstName + " " + in.LastName); name != "" {
		params = params.DisplayName(name)
	}
	record, err := p.Client.CreateUser(ctx, params)
	if auth.IsEmailAlreadyExists(err) {
		return "", ErrEmailAlreadyInUse
	}
	if err != nil {
		return "", fmt.Errorf("firebase signup failed: %w", err)
	}

	user := &models.User{
		ID:          record.UID,
		Email:       email,
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		PhoneNumber: strings.TrimSpace(in.Phone),
	}
	if err := p.Repo.Create(ctx, user); err != nil {
		// The Firebase account exists either way; a missing profile reads as
		// an empty wallet.
		utils.GetLogger().Warn("Failed to store customer profile",
			zap.String("userId", record.UID), zap.Error(err))
	}
	return record.UID, nil
}

// SignIn is done by clients with the Firebase SDK.
func (p *FirebaseProvider) SignIn(context.Context, string, string) (*AuthResponse, error) {
	return nil, ErrNotSupported
}

func (p *FirebaseProvider) VerifyToken(ctx context.Context, token string) (string, error) {
	t, err := p.Client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return t.UID, nil
}
