package routes

import (
	"time"

	"washbook/handlers"
	"washbook/middleware"
	"washbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterHealthRoutes registers the health-check and metrics endpoints.
func RegisterHealthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterVendorRoutes registers the public calendar endpoints.
func RegisterVendorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/vendors")
	{
		api.GET("/:id/availability", hb.Vendors.Availability)
		api.GET("/:id/slots", hb.Vendors.Slots)
	}
}

// RegisterBookingRoutes sets up the booking session endpoints. A bearer
// token is optional except for resuming.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/booking")
	{
		api.Use(middleware.OptionalAuth(hb.Verifier, hb.AuthCache))
		api.POST("/sessions", hb.Booking.OpenSession)
		api.GET("/sessions/:id", hb.Booking.GetSession)
		api.PATCH("/sessions/:id", hb.Booking.UpdateSession)
		api.POST("/sessions/:id/next", hb.Booking.Next)
		api.POST("/sessions/:id/back", hb.Booking.Back)
		api.POST("/sessions/:id/submit", hb.Booking.Submit)
		api.DELETE("/sessions/:id", hb.Booking.CloseSession)
		api.POST("/resume", middleware.RequireAuth(), hb.Booking.Resume)
	}
}

// RegisterAuthRoutes registers signup and login for local accounts.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	if !hb.LocalAuth {
		return
	}
	api := r.Group("/api/auth")
	{
		api.POST("/signup", hb.Auth.SignUp)
		api.POST("/login", hb.Auth.Login)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoutes(r, hb)
	RegisterVendorRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAuthRoutes(r, hb)
}
