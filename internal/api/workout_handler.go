package api

import (
	"fmt"
	"net/http"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler exposes the workout lifecycle endpoints.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- Request/Response Structs ---

type CreateWorkoutRequest struct {
	Name    string         `json:"name" binding:"required,max=100"`
	Routine domain.Routine `json:"routine" binding:"required"`
}

type EditRoutineRequest struct {
	Routine domain.Routine `json:"routine" binding:"required"`
}

type RenameWorkoutRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type CopyWorkoutRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// RestartWorkoutRequest carries the routine's final state for the finished
// cycle, completion flags included.
type RestartWorkoutRequest struct {
	Routine domain.Routine `json:"routine" binding:"required"`
}

type SetProgressRequest struct {
	Week int `json:"week" binding:"gte=0"`
	Day  int `json:"day" binding:"gte=0"`
}

// --- Handler Methods ---

// CreateWorkout creates a workout from a routine.
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, err := h.workoutService.CreateWorkout(c.Request.Context(), userID, req.Name, req.Routine)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

// GetWorkout returns one of the caller's workouts.
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	workout, err := h.workoutService.GetWorkout(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// EditRoutine replaces the workout's routine.
func (h *WorkoutHandler) EditRoutine(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req EditRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, err := h.workoutService.EditWorkoutRoutine(c.Request.Context(), userID, c.Param("id"), req.Routine)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// Rename renames a workout everywhere it is referenced.
func (h *WorkoutHandler) Rename(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req RenameWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.workoutService.RenameWorkout(c.Request.Context(), userID, c.Param("id"), req.Name); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Copy duplicates a workout under a new name.
func (h *WorkoutHandler) Copy(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req CopyWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, err := h.workoutService.CopyWorkout(c.Request.Context(), userID, c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

// Restart folds the finished cycle into the statistics and resets it.
func (h *WorkoutHandler) Restart(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req RestartWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, err := h.workoutService.RestartWorkout(c.Request.Context(), userID, c.Param("id"), req.Routine)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// Delete removes a workout.
func (h *WorkoutHandler) Delete(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	if err := h.workoutService.DeleteWorkout(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetProgress moves the progress cursor and makes the workout current.
func (h *WorkoutHandler) SetProgress(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req SetProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.workoutService.SetProgress(c.Request.Context(), userID, c.Param("id"), req.Week, req.Day); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
