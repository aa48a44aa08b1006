// File: washbook/handlers/bundle.go
package handlers

import (
	"washbook/middleware"

	"github.com/go-redis/redis/v8"
)

// HandlerBundle groups the endpoint handlers and what routes need to
// authenticate them.
type HandlerBundle struct {
	Booking *BookingHandler
	Vendors *VendorHandler
	Auth    *AuthHandler
	Health  *HealthHandler

	// Verifier resolves bearer tokens; AuthCache caches its answers.
	Verifier          middleware.TokenVerifier
	AuthCache         *redis.Client
	MaxRequestsPerMin int
	// LocalAuth enables /api/auth; Firebase customers sign in client-side.
	LocalAuth bool
}
