package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"washbook/services/account"
	"washbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAccounts struct {
	signUpErr error
	signInErr error
}

func (s stubAccounts) SignUp(context.Context, account.SignUpInput) (string, error) {
	return "u1", s.signUpErr
}

func (s stubAccounts) SignIn(_ context.Context, email, _ string) (*account.AuthResponse, error) {
	if s.signInErr != nil {
		return nil, s.signInErr
	}
	return &account.AuthResponse{UserID: "u1", Email: email, Token: "jwt"}, nil
}

func (s stubAccounts) VerifyToken(context.Context, string) (string, error) {
	return "u1", nil
}

func newAuthRouter(p account.Provider) *gin.Engine {
	h := NewAuthHandler(p)
	r := gin.New()
	r.POST("/signup", h.SignUp)
	r.POST("/login", h.Login)
	return r
}

func TestSignUpHandler(t *testing.T) {
	r := newAuthRouter(stubAccounts{})

	w := do(r, http.MethodPost, "/signup", `{"email":"maija@example.com","password":"salasana"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp account.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "jwt", resp.Token)

	w = do(r, http.MethodPost, "/signup", `{"email":"maija@example.com","password":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignUpHandlerEmailInUse(t *testing.T) {
	r := newAuthRouter(stubAccounts{signUpErr: account.ErrEmailAlreadyInUse})

	w := do(r, http.MethodPost, "/signup", `{"email":"maija@example.com","password":"salasana"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "email_in_use", resp.Code)
}

func TestLoginHandler(t *testing.T) {
	r := newAuthRouter(stubAccounts{})
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/login", `{"email":"maija@example.com","password":"x"}`).Code)

	r = newAuthRouter(stubAccounts{signInErr: account.ErrInvalidCredentials})
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/login", `{"email":"maija@example.com","password":"x"}`).Code)

	r = newAuthRouter(stubAccounts{signInErr: account.ErrNotSupported})
	assert.Equal(t, http.StatusNotImplemented, do(r, http.MethodPost, "/login", `{"email":"maija@example.com","password":"x"}`).Code)
}

func TestHealthHandler(t *testing.T) {
	h := &HealthHandler{Status: func() utils.HealthStatus { return utils.HealthStatus{} }}
	r := gin.New()
	r.GET("/health", h.Health)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health", "").Code)
}
