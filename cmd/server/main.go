package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"liftlog/workout-app/internal/api"
	"liftlog/workout-app/internal/config"
	"liftlog/workout-app/internal/push"
	"liftlog/workout-app/internal/repository/mongo"
	"liftlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})
	log.Info("starting liftlog server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.WithError(err).Fatal("could not load config")
	}

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.WithError(err).Fatal("could not connect to MongoDB")
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.WithError(err).Error("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Info("database connection established")

	// --- Ensure Indexes ---
	go func() { // Run index creation concurrently/in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts"))
		mongo.EnsureSharedWorkoutIndexes(ctx, appDB.Collection("shared_workouts"))
		log.Info("index creation process completed")
	}()

	// --- Push Dispatcher ---
	var dispatcher push.Dispatcher
	switch cfg.Push.Provider {
	case "sns":
		dispatcher, err = push.NewSNSDispatcher(cfg.Push)
		if err != nil {
			log.WithError(err).Fatal("failed to initialize SNS push dispatcher")
		}
	default:
		dispatcher = push.NewLogDispatcher()
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	sharedRepo := mongo.NewMongoSharedWorkoutRepository(appDB)
	batchWriter := mongo.NewMongoBatchWriter(dbClient, appDB)

	// --- Initialize Services ---
	clock := service.NewClock()
	ids := service.NewIDGenerator()
	authService := service.NewAuthService(userRepo, clock, ids, cfg.JWT.Secret, cfg.JWT.Expiration)
	userService := service.NewUserService(userRepo, workoutRepo, sharedRepo, clock)
	exerciseService := service.NewExerciseService(userRepo, workoutRepo, batchWriter, clock, ids)
	workoutService := service.NewWorkoutService(userRepo, workoutRepo, batchWriter, clock, ids)
	shareService := service.NewShareService(userRepo, workoutRepo, sharedRepo, batchWriter, dispatcher, clock, ids)
	friendService := service.NewFriendService(userRepo, batchWriter, dispatcher, clock)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	api.SetupRoutes(router, cfg.JWT.Secret,
		authService, userService, exerciseService, workoutService, shareService, friendService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen and serve error")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exiting")
}
