package api

import (
	"fmt"
	"net/http"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes profile, settings and account endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- Request/Response Structs ---

type UpdateSettingsRequest struct {
	Settings domain.UserSettings `json:"settings" binding:"required"`
}

type RegisterPushDeviceRequest struct {
	EndpointARN string `json:"endpointArn"`
}

// PublicUserResponse is what other users see of a profile.
type PublicUserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Premium  bool   `json:"premium"`
}

// --- Handler Methods ---

// GetMe returns the caller's full document.
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// FindByUsername looks up another user's public profile.
func (h *UserHandler) FindByUsername(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	user, err := h.userService.FindUserByUsername(c.Request.Context(), userID, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PublicUserResponse{
		ID:       user.ID,
		Username: user.Username,
		Premium:  user.Premium,
	})
}

// UpdateSettings replaces the caller's preference block.
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.userService.UpdateSettings(c.Request.Context(), userID, req.Settings); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterPushDevice stores the device's push endpoint. An empty ARN
// unregisters it.
func (h *UserHandler) RegisterPushDevice(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req RegisterPushDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.userService.RegisterPushDevice(c.Request.Context(), userID, req.EndpointARN); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteAccount removes the caller's account and everything referencing it.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	if err := h.userService.DeleteAccount(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
