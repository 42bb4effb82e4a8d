package service

import (
	"context"
	"errors"

	"liftlog/workout-app/internal/apperr"
	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"

	log "github.com/sirupsen/logrus"
)

// ExerciseService manages a user's private exercise catalog. Deleting an
// exercise also strips it from every routine that references it, so the
// back-reference index stays exact.
type ExerciseService interface {
	CreateExercise(ctx context.Context, userID string, exercise domain.OwnedExercise) (*domain.OwnedExercise, error)
	GetExercises(ctx context.Context, userID string) ([]domain.OwnedExercise, error)
	UpdateExercise(ctx context.Context, userID, exerciseID string, update domain.OwnedExercise) (*domain.OwnedExercise, error)
	DeleteExercise(ctx context.Context, userID, exerciseID string) error
}

type exerciseService struct {
	userRepo    repository.UserRepository
	workoutRepo repository.WorkoutRepository
	batch       repository.BatchWriter
	clock       Clock
	ids         IDGenerator
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(
	userRepo repository.UserRepository,
	workoutRepo repository.WorkoutRepository,
	batch repository.BatchWriter,
	clock Clock,
	ids IDGenerator,
) ExerciseService {
	return &exerciseService{
		userRepo:    userRepo,
		workoutRepo: workoutRepo,
		batch:       batch,
		clock:       clock,
		ids:         ids,
	}
}

// CreateExercise adds a catalog entry. The back-reference list starts empty;
// it only fills in when workouts reference the exercise.
func (s *exerciseService) CreateExercise(ctx context.Context, userID string, exercise domain.OwnedExercise) (*domain.OwnedExercise, error) {
	if exercise.Name == "" {
		return nil, apperr.Misc("exercise name is required")
	}
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Exercises) >= user.MaxExercises() {
		return nil, apperr.MaxLimit("user has reached the exercise limit of %d", user.MaxExercises())
	}
	if user.ExerciseByName(exercise.Name) != nil {
		return nil, apperr.AlreadyExists("an exercise named %q already exists", exercise.Name)
	}

	exercise.ID = s.ids.NewID()
	exercise.Workouts = nil
	user.Exercises = append(user.Exercises, exercise)
	user.UpdatedAt = s.clock.Now()

	if err := s.userRepo.Put(ctx, user); err != nil {
		return nil, err
	}
	return user.ExerciseByID(exercise.ID), nil
}

// GetExercises returns the full catalog.
func (s *exerciseService) GetExercises(ctx context.Context, userID string) ([]domain.OwnedExercise, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Exercises, nil
}

// UpdateExercise edits a catalog entry in place. Routines reference
// exercises by ID, so renaming needs no routine rewrite; the back-reference
// list is preserved, not taken from the caller.
func (s *exerciseService) UpdateExercise(ctx context.Context, userID, exerciseID string, update domain.OwnedExercise) (*domain.OwnedExercise, error) {
	if update.Name == "" {
		return nil, apperr.Misc("exercise name is required")
	}
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	exercise := user.ExerciseByID(exerciseID)
	if exercise == nil {
		return nil, apperr.NotFound("exercise %s not found", exerciseID)
	}
	if existing := user.ExerciseByName(update.Name); existing != nil && existing.ID != exerciseID {
		return nil, apperr.AlreadyExists("an exercise named %q already exists", update.Name)
	}

	exercise.Name = update.Name
	exercise.DefaultWeight = update.DefaultWeight
	exercise.DefaultSets = update.DefaultSets
	exercise.DefaultReps = update.DefaultReps
	exercise.DefaultDetails = update.DefaultDetails
	exercise.Focuses = update.Focuses
	exercise.VideoURL = update.VideoURL
	user.UpdatedAt = s.clock.Now()

	if err := s.userRepo.Put(ctx, user); err != nil {
		return nil, err
	}
	return exercise, nil
}

// DeleteExercise removes a catalog entry and every occurrence of it from
// the user's routines. The affected workouts and the user land in one
// batch.
func (s *exerciseService) DeleteExercise(ctx context.Context, userID, exerciseID string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	exercise := user.ExerciseByID(exerciseID)
	if exercise == nil {
		return apperr.NotFound("exercise %s not found", exerciseID)
	}

	// The back-reference index tells us exactly which workouts to rewrite.
	var workoutsToPut []*domain.Workout
	for _, ref := range exercise.Workouts {
		workout, err := s.workoutRepo.GetByID(ctx, ref.WorkoutID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				log.WithField("workout", ref.WorkoutID).Warn("stale back-reference on exercise delete")
				continue
			}
			return err
		}
		workout.Routine.RemoveExercise(exerciseID)
		workoutsToPut = append(workoutsToPut, workout)
	}

	for i := range user.Exercises {
		if user.Exercises[i].ID == exerciseID {
			user.Exercises = append(user.Exercises[:i], user.Exercises[i+1:]...)
			break
		}
	}
	user.UpdatedAt = s.clock.Now()

	return s.batch.ExecuteBatchWrite(ctx, repository.BatchWrite{
		UsersToPut:    []*domain.User{user},
		WorkoutsToPut: workoutsToPut,
	})
}

func (s *exerciseService) getUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user %s not found", id)
		}
		return nil, err
	}
	return user, nil
}
