package handlers

import (
	"errors"
	"net/http"

	"washbook/services/account"
	"washbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves signup and login for the local account provider.
type AuthHandler struct {
	Accounts account.Provider
}

func NewAuthHandler(accounts account.Provider) *AuthHandler {
	return &AuthHandler{Accounts: accounts}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignUp handles POST /api/auth/signup and signs the new customer in.
func (h *AuthHandler) SignUp(c *gin.Context) {
	logger := getLogger(c)

	var req account.SignUpInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_request", "Invalid request", err.Error())
		return
	}

	if _, err := h.Accounts.SignUp(c.Request.Context(), req); err != nil {
		h.writeAuthError(c, err)
		return
	}
	resp, err := h.Accounts.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Error("Sign-in after signup failed", zap.Error(err))
		h.writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_request", "Invalid request", err.Error())
		return
	}
	resp, err := h.Accounts.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, account.ErrEmailAlreadyInUse):
		utils.JSONErrorCode(c, http.StatusConflict, "email_in_use", "Email already registered", "")
	case errors.Is(err, account.ErrInvalidCredentials):
		utils.JSONErrorCode(c, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password", "")
	case errors.Is(err, account.ErrInvalidSignUp):
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_request", "Invalid request", err.Error())
	case errors.Is(err, account.ErrNotSupported):
		utils.JSONErrorCode(c, http.StatusNotImplemented, "not_supported", "Sign in with the Firebase SDK", "")
	default:
		getLogger(c).Error("Auth request failed", zap.Error(err))
		utils.JSONErrorCode(c, http.StatusInternalServerError, "internal", "Internal Server Error", "")
	}
}
