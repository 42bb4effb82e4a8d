package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"liftlog/workout-app/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubShareService records the accept arguments and returns a canned workout.
type stubShareService struct {
	acceptedID   string
	acceptedName string
}

func (s *stubShareService) ShareWorkout(context.Context, string, string, string) (*domain.SharedWorkout, error) {
	return nil, nil
}

func (s *stubShareService) GetReceivedWorkout(context.Context, string, string) (*domain.SharedWorkout, error) {
	return nil, nil
}

func (s *stubShareService) GetReceivedWorkouts(context.Context, string) ([]domain.SharedWorkout, error) {
	return nil, nil
}

func (s *stubShareService) AcceptReceivedWorkout(_ context.Context, _ string, sharedWorkoutID, newName string) (*domain.Workout, error) {
	s.acceptedID = sharedWorkoutID
	s.acceptedName = newName
	return &domain.Workout{ID: "w1", Name: "Leg Day"}, nil
}

func (s *stubShareService) DeclineReceivedWorkout(context.Context, string, string) error {
	return nil
}

func (s *stubShareService) SetReceivedWorkoutSeen(context.Context, string, string) error {
	return nil
}

func (s *stubShareService) SetAllReceivedWorkoutsSeen(context.Context, string) error {
	return nil
}

func acceptRouter(svc *stubShareService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserIDKey, "bob")
	})
	handler := NewShareHandler(svc)
	router.POST("/shared-workouts/:id/accept", handler.Accept)
	return router
}

func TestAcceptHandlerBodyIsOptional(t *testing.T) {
	t.Run("empty body keeps the shared name", func(t *testing.T) {
		svc := &stubShareService{}
		router := acceptRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/shared-workouts/s1/accept", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "s1", svc.acceptedID)
		assert.Empty(t, svc.acceptedName)
	})

	t.Run("rename passes through", func(t *testing.T) {
		svc := &stubShareService{}
		router := acceptRouter(svc)

		body := strings.NewReader(`{"name":"Leg Day v2"}`)
		req := httptest.NewRequest(http.MethodPost, "/shared-workouts/s1/accept", body)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "Leg Day v2", svc.acceptedName)
	})

	t.Run("malformed body still rejected", func(t *testing.T) {
		svc := &stubShareService{}
		router := acceptRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/shared-workouts/s1/accept", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
