package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ShareHandler exposes the workout sharing endpoints.
type ShareHandler struct {
	shareService service.ShareService
}

// NewShareHandler creates a new ShareHandler.
func NewShareHandler(shareService service.ShareService) *ShareHandler {
	return &ShareHandler{shareService: shareService}
}

// --- Request/Response Structs ---

type ShareWorkoutRequest struct {
	RecipientID string `json:"recipientId" binding:"required"`
	WorkoutID   string `json:"workoutId" binding:"required"`
}

type AcceptSharedWorkoutRequest struct {
	// Optional rename, used to sidestep a name collision.
	Name string `json:"name" binding:"max=100"`
}

// --- Handler Methods ---

// Share snapshots a workout and hands it to the recipient.
func (h *ShareHandler) Share(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req ShareWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	shared, err := h.shareService.ShareWorkout(c.Request.Context(), userID, req.RecipientID, req.WorkoutID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shared)
}

// ListReceived returns every pending share addressed to the caller.
func (h *ShareHandler) ListReceived(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	shares, err := h.shareService.GetReceivedWorkouts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if shares == nil {
		shares = []domain.SharedWorkout{}
	}
	c.JSON(http.StatusOK, shares)
}

// GetReceived returns the full snapshot of a pending share.
func (h *ShareHandler) GetReceived(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	shared, err := h.shareService.GetReceivedWorkout(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shared)
}

// Accept turns a pending share into an owned workout.
func (h *ShareHandler) Accept(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	// The body is optional; a bare accept keeps the shared name.
	var req AcceptSharedWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, err := h.shareService.AcceptReceivedWorkout(c.Request.Context(), userID, c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

// Decline removes a pending share without side effects.
func (h *ShareHandler) Decline(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	if err := h.shareService.DeclineReceivedWorkout(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkSeen marks one received workout preview as seen.
func (h *ShareHandler) MarkSeen(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	if err := h.shareService.SetReceivedWorkoutSeen(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkAllSeen marks every received workout preview as seen.
func (h *ShareHandler) MarkAllSeen(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	if err := h.shareService.SetAllReceivedWorkoutsSeen(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
