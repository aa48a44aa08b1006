// File: washbook/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"washbook/config"
	"washbook/cron"
	"washbook/database"
	appointmentRepo "washbook/database/repository/appointment"
	catalogRepo "washbook/database/repository/catalog"
	userRepoPkg "washbook/database/repository/user"
	"washbook/handlers"
	"washbook/routes"
	"washbook/services/account"
	"washbook/services/booking"
	"washbook/services/tasks"
	"washbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.InitDB(ctx); err != nil {
		logger.Fatal("main: database unavailable", zap.Error(err))
	}
	sessionClient := utils.GetSessionClient()
	authCache := utils.GetAuthCacheClient()

	// repositories.
	db := database.DB()
	userRepo := userRepoPkg.NewMongoUserRepo(db)
	mongoCatalog := catalogRepo.NewMongoCatalogRepo(db)
	apptRepo := appointmentRepo.NewMongoAppointmentRepo(db)
	for name, ensure := range map[string]func(context.Context) error{
		"users":        userRepo.EnsureIndexes,
		"catalog":      mongoCatalog.EnsureIndexes,
		"appointments": apptRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			logger.Warn("main: index creation failed", zap.String("repo", name), zap.Error(err))
		}
	}
	catalog := catalogRepo.NewCachedCatalog(mongoCatalog,
		time.Duration(config.AppConfig.CatalogCacheSeconds)*time.Second)

	// accounts.
	accounts, localAuth := newAccountProvider(ctx, userRepo)

	// booking.
	store := booking.NewRedisSessionStore(sessionClient,
		time.Duration(config.AppConfig.SessionTTLMinutes)*time.Minute)
	exits, shutdownExits := newExitScheduler(store)
	defer shutdownExits()

	sequencer := booking.NewSequencer(userRepo, apptRepo, accounts)
	bookingService := booking.NewBookingSessionService(catalog, userRepo, store, sequencer, exits)

	// Assemble the handler bundle.
	utils.StartHealthMonitor(ctx, []*redis.Client{sessionClient, authCache}, database.MongoClient)
	handlerBundle := &handlers.HandlerBundle{
		Booking:           handlers.NewBookingHandler(bookingService),
		Vendors:           handlers.NewVendorHandler(catalog),
		Auth:              handlers.NewAuthHandler(accounts),
		Health:            &handlers.HealthHandler{Status: utils.GetHealthStatus},
		Verifier:          accounts,
		AuthCache:         authCache,
		MaxRequestsPerMin: config.AppConfig.MaxRequestsPerMin,
		LocalAuth:         localAuth,
	}

	router := gin.New()
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if err := database.Close(shutdownCtx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}
	logger.Info("main: server stopped gracefully")
}

// newAccountProvider picks the account backend from AUTH_PROVIDER. The
// second result reports whether this service handles sign-in itself.
func newAccountProvider(ctx context.Context, users userRepoPkg.UserRepository) (account.Provider, bool) {
	logger := utils.GetLogger()
	if config.AppConfig.AuthProvider == "firebase" {
		client, err := utils.FirebaseAuthClient(ctx)
		if err != nil {
			logger.Fatal("main: firebase unavailable", zap.Error(err))
		}
		return account.NewFirebaseProvider(client, users), false
	}
	return account.NewLocalProvider(users), true
}

// newExitScheduler queues exits on asynq when enabled, otherwise runs them
// in-process. The returned func stops whichever was started.
func newExitScheduler(store booking.SessionStore) (booking.ExitScheduler, func()) {
	if !config.AppConfig.QueueEnabled {
		timers := booking.NewTimerExitScheduler(store)
		return timers, timers.Stop
	}

	client := asynq.NewClient(cron.RedisOpt())
	worker := cron.NewSessionWorker(store)
	worker.Start()
	return tasks.NewAsynqExitScheduler(client), func() {
		worker.Shutdown()
		if err := client.Close(); err != nil {
			utils.GetLogger().Warn("main: asynq client close failed", zap.Error(err))
		}
	}
}
