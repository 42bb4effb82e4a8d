package api

import (
	"fmt"
	"net/http"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler exposes the exercise catalog endpoints.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- Request/Response Structs ---

type ExerciseRequest struct {
	Name           string   `json:"name" binding:"required,max=100"`
	DefaultWeight  float64  `json:"defaultWeight" binding:"gte=0"`
	DefaultSets    int      `json:"defaultSets" binding:"gte=0"`
	DefaultReps    int      `json:"defaultReps" binding:"gte=0"`
	DefaultDetails string   `json:"defaultDetails"`
	Focuses        []string `json:"focuses"`
	VideoURL       string   `json:"videoUrl"`
}

func (r *ExerciseRequest) toDomain() domain.OwnedExercise {
	return domain.OwnedExercise{
		Name:           r.Name,
		DefaultWeight:  r.DefaultWeight,
		DefaultSets:    r.DefaultSets,
		DefaultReps:    r.DefaultReps,
		DefaultDetails: r.DefaultDetails,
		Focuses:        r.Focuses,
		VideoURL:       r.VideoURL,
	}
}

// --- Handler Methods ---

// CreateExercise adds an entry to the caller's catalog.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), userID, req.toDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

// GetExercises returns the caller's full catalog.
func (h *ExerciseHandler) GetExercises(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	exercises, err := h.exerciseService.GetExercises(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if exercises == nil {
		exercises = []domain.OwnedExercise{}
	}
	c.JSON(http.StatusOK, exercises)
}

// UpdateExercise edits a catalog entry.
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.exerciseService.UpdateExercise(c.Request.Context(), userID, c.Param("id"), req.toDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// DeleteExercise removes a catalog entry and strips it from every routine.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	if err := h.exerciseService.DeleteExercise(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
