package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"cabsy/internal/config"
	"cabsy/internal/controllers"
	"cabsy/internal/fare"
	"cabsy/internal/logger"
	"cabsy/internal/middleware"
	"cabsy/internal/repositories"
	"cabsy/internal/routes"
	"cabsy/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// Initialize structured logging to file
	logOut := logger.Setup(cfg.Log)

	// Connect to the database
	db, err := config.InitDB(cfg.DB, logger.NewGormLogger(logrus.StandardLogger()))
	if err != nil {
		logrus.WithError(err).Fatal("database setup failed")
	}

	users := repositories.NewUserRepository(db)
	drivers := repositories.NewDriverRepository(db)
	cabs := repositories.NewCabRepository(db)
	rides := repositories.NewRideRepository(db)
	payments := repositories.NewPaymentRepository(db)
	ratings := repositories.NewRatingRepository(db)

	hasher := services.BcryptHasher{}
	userSvc := services.NewUserService(users, hasher, cfg.PasswordMinLength)
	driverSvc := services.NewDriverService(drivers, hasher, cfg.PasswordMinLength)
	cabSvc := services.NewCabService(cabs, drivers)
	rideSvc := services.NewRideService(rides, users, drivers, cabs,
		fare.NewEstimator(cfg.FareRatePerKm, cfg.FareCompletionMarkup))
	paymentSvc := services.NewPaymentService(payments, rides)
	ratingSvc := services.NewRatingService(ratings, rides, drivers)

	auth := middleware.NewAuth(cfg.JWTSecret, cfg.JWTTTL)
	r := routes.SetupRouter(routes.Handlers{
		Auth:     controllers.NewAuthController(userSvc, driverSvc, auth),
		Users:    controllers.NewUserController(userSvc),
		Drivers:  controllers.NewDriverController(driverSvc, cabSvc),
		Cabs:     controllers.NewCabController(cabSvc),
		Rides:    controllers.NewRideController(rideSvc, ratingSvc),
		Payments: controllers.NewPaymentController(paymentSvc),
	}, auth, logOut)

	// Wrap with CORS
	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           middleware.EnableCORS(r, cfg.CORSAllowedOrigins...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("🚀 Server running at %s", cfg.ServerAddr)
		logrus.WithField("addr", cfg.ServerAddr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
