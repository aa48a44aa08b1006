package account

import (
	"context"
	"errors"
	"sync"
	"testing"

	userRepo "washbook/database/repository/user"
	"washbook/models"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	mu        sync.Mutex
	byEmail   map[string]*models.User
	createErr error
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: map[string]*models.User{}}
}

func (m *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, userRepo.ErrNotFound
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.byEmail[u.Email]; ok {
		return userRepo.ErrDuplicateEmail
	}
	m.byEmail[u.Email] = u
	return nil
}

func newTestLocalProvider() (*LocalProvider, *memUsers) {
	users := newMemUsers()
	p := NewLocalProvider(users)
	p.Cost = bcrypt.MinCost
	return p, users
}

func TestLocalSignUpAndSignIn(t *testing.T) {
	p, users := newTestLocalProvider()
	ctx := t.Context()

	id, err := p.SignUp(ctx, SignUpInput{Email: " Maija@Example.com ", Password: "salasana", FirstName: "Maija"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	stored := users.byEmail["maija@example.com"]
	require.NotNil(t, stored)
	assert.Equal(t, id, stored.ID)
	assert.NotEqual(t, "salasana", stored.PasswordHash)
	assert.Zero(t, stored.Wallet.Coins)

	resp, err := p.SignIn(ctx, "MAIJA@example.com", "salasana")
	require.NoError(t, err)
	assert.Equal(t, id, resp.UserID)

	verified, err := p.VerifyToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, id, verified)
}

func TestLocalSignUpDuplicateEmail(t *testing.T) {
	p, _ := newTestLocalProvider()
	ctx := t.Context()
	_, err := p.SignUp(ctx, SignUpInput{Email: "maija@example.com", Password: "salasana"})
	require.NoError(t, err)

	_, err = p.SignUp(ctx, SignUpInput{Email: "MAIJA@example.com", Password: "toinen123"})
	assert.ErrorIs(t, err, ErrEmailAlreadyInUse)
}

func TestLocalSignUpRaceMapsDuplicateKey(t *testing.T) {
	p, users := newTestLocalProvider()
	users.createErr = userRepo.ErrDuplicateEmail

	_, err := p.SignUp(t.Context(), SignUpInput{Email: "maija@example.com", Password: "salasana"})
	assert.ErrorIs(t, err, ErrEmailAlreadyInUse)
}

func TestLocalSignUpInvalid(t *testing.T) {
	p, _ := newTestLocalProvider()
	_, err := p.SignUp(t.Context(), SignUpInput{Email: "  ", Password: "salasana"})
	assert.ErrorIs(t, err, ErrInvalidSignUp)
}

func TestLocalSignInWrongPassword(t *testing.T) {
	p, _ := newTestLocalProvider()
	ctx := t.Context()
	_, err := p.SignUp(ctx, SignUpInput{Email: "maija@example.com", Password: "salasana"})
	require.NoError(t, err)

	_, err = p.SignIn(ctx, "maija@example.com", "wrong-one")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = p.SignIn(ctx, "nobody@example.com", "salasana")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLocalVerifyTokenRejectsGarbage(t *testing.T) {
	p, _ := newTestLocalProvider()
	_, err := p.VerifyToken(t.Context(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

type fakeFirebase struct {
	created []*auth.UserToCreate
	err     error
}

func (f *fakeFirebase) CreateUser(_ context.Context, u *auth.UserToCreate) (*auth.UserRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, u)
	return &auth.UserRecord{UserInfo: &auth.UserInfo{UID: "fb-uid"}}, nil
}

func (f *fakeFirebase) VerifyIDToken(_ context.Context, token string) (*auth.Token, error) {
	if token != "good" {
		return nil, errors.New("token has expired")
	}
	return &auth.Token{UID: "fb-uid"}, nil
}

func TestFirebaseSignUpMirrorsProfile(t *testing.T) {
	fb := &fakeFirebase{}
	users := newMemUsers()
	p := NewFirebaseProvider(fb, users)

	id, err := p.SignUp(t.Context(), SignUpInput{Email: "Pekka@example.com", Password: "salasana", FirstName: "Pekka"})
	require.NoError(t, err)
	assert.Equal(t, "fb-uid", id)
	assert.Len(t, fb.created, 1)
	require.Contains(t, users.byEmail, "pekka@example.com")
	assert.Equal(t, "fb-uid", users.byEmail["pekka@example.com"].ID)
}

func TestFirebaseSignUpProfileFailureIsNotFatal(t *testing.T) {
	users := newMemUsers()
	users.createErr = errors.New("mongo down")
	p := NewFirebaseProvider(&fakeFirebase{}, users)

	id, err := p.SignUp(t.Context(), SignUpInput{Email: "pekka@example.com", Password: "salasana"})
	require.NoError(t, err)
	assert.Equal(t, "fb-uid", id)
}

func TestFirebaseSignUpProviderError(t *testing.T) {
	p := NewFirebaseProvider(&fakeFirebase{err: errors.New("quota")}, newMemUsers())
	_, err := p.SignUp(t.Context(), SignUpInput{Email: "pekka@example.com", Password: "salasana"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailAlreadyInUse)
}

func TestFirebaseVerifyAndSignIn(t *testing.T) {
	p := NewFirebaseProvider(&fakeFirebase{}, newMemUsers())

	id, err := p.VerifyToken(t.Context(), "good")
	require.NoError(t, err)
	assert.Equal(t, "fb-uid", id)

	_, err = p.VerifyToken(t.Context(), "bad")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = p.SignIn(t.Context(), "pekka@example.com", "salasana")
	assert.ErrorIs(t, err, ErrNotSupported)
}
