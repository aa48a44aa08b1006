package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"washbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const userIDKey = "userID"

// TokenVerifier resolves a bearer token to a customer id.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// OptionalAuth identifies the customer when a bearer token is present.
// Requests without a token continue anonymously; an invalid token is
// rejected. Verified tokens are cached by hash in Redis.
func OptionalAuth(verifier TokenVerifier, authCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if !strings.HasPrefix(authHeader, "Bearer ") || tokenString == "" {
			utils.JSONErrorCode(c, http.StatusUnauthorized, "unauthorized", "Insufficient authorization", "")
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		logger := utils.GetLogger()
		cacheKey := utils.AuthCachePrefix + utils.HashToken(tokenString)

		if authCache != nil {
			userID, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil && userID != "" {
				c.Set(userIDKey, userID)
				c.Next()
				return
			}
			if err != nil && !errors.Is(err, redis.Nil) {
				// Treat as a cache miss.
				logger.Warn("Auth cache lookup failed", zap.Error(err))
			}
		}

		userID, err := verifier.VerifyToken(ctx, tokenString)
		if err != nil || userID == "" {
			logger.Debug("Bearer token rejected", zap.Error(err))
			utils.JSONErrorCode(c, http.StatusUnauthorized, "unauthorized", "Invalid token", "")
			c.Abort()
			return
		}

		if authCache != nil {
			if err := authCache.Set(ctx, cacheKey, userID, utils.AuthCacheTTL).Err(); err != nil {
				logger.Warn("Failed to cache verified token", zap.Error(err))
			}
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// RequireAuth rejects requests that OptionalAuth did not identify.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			utils.JSONErrorCode(c, http.StatusUnauthorized, "unauthorized", "Insufficient authorization", "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated customer id, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
