package api

import (
	"net/http"

	"liftlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	userService service.UserService,
	exerciseService service.ExerciseService,
	workoutService service.WorkoutService,
	shareService service.ShareService,
	friendService service.FriendService,
) {
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	workoutHandler := NewWorkoutHandler(workoutService)
	shareHandler := NewShareHandler(shareService)
	friendHandler := NewFriendHandler(friendService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Account ---
		protected.GET("/me", userHandler.GetMe)
		protected.PUT("/me/settings", userHandler.UpdateSettings)
		protected.PUT("/me/push-device", userHandler.RegisterPushDevice)
		protected.DELETE("/me", userHandler.DeleteAccount)
		protected.GET("/users/:username", userHandler.FindByUsername)

		// --- Exercise catalog ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.GetExercises)
			exerciseGroup.PUT("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
		}

		// --- Workouts ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.PUT("/:id/routine", workoutHandler.EditRoutine)
			workoutGroup.PUT("/:id/name", workoutHandler.Rename)
			workoutGroup.POST("/:id/copy", workoutHandler.Copy)
			workoutGroup.POST("/:id/restart", workoutHandler.Restart)
			workoutGroup.PUT("/:id/progress", workoutHandler.SetProgress)
			workoutGroup.DELETE("/:id", workoutHandler.Delete)
		}

		// --- Sharing ---
		shareGroup := protected.Group("/shared-workouts")
		{
			shareGroup.POST("", shareHandler.Share)
			shareGroup.GET("", shareHandler.ListReceived)
			shareGroup.GET("/:id", shareHandler.GetReceived)
			shareGroup.POST("/:id/accept", shareHandler.Accept)
			shareGroup.POST("/:id/decline", shareHandler.Decline)
			shareGroup.PUT("/:id/seen", shareHandler.MarkSeen)
		}
		protected.PUT("/me/received-workouts/seen", shareHandler.MarkAllSeen)

		// --- Friends ---
		friendGroup := protected.Group("/friends")
		{
			friendGroup.POST("/requests", friendHandler.SendRequest)
			friendGroup.POST("/requests/:id/accept", friendHandler.AcceptRequest)
			friendGroup.POST("/requests/:id/decline", friendHandler.DeclineRequest)
			friendGroup.DELETE("/requests/:id", friendHandler.CancelRequest)
			friendGroup.DELETE("/:id", friendHandler.Remove)
		}
	}
}
