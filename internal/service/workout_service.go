package service

import (
	"context"
	"errors"

	"liftlog/workout-app/internal/apperr"
	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"
	"liftlog/workout-app/internal/stats"
)

// WorkoutService covers the lifecycle of owned workouts: create, edit,
// rename, copy, restart, delete and the progress cursor. Every mutation
// that touches both a Workout document and the owning User document goes
// through the batch writer so the two land together.
type WorkoutService interface {
	CreateWorkout(ctx context.Context, userID, name string, routine domain.Routine) (*domain.Workout, error)
	GetWorkout(ctx context.Context, userID, workoutID string) (*domain.Workout, error)
	EditWorkoutRoutine(ctx context.Context, userID, workoutID string, routine domain.Routine) (*domain.Workout, error)
	RenameWorkout(ctx context.Context, userID, workoutID, newName string) error
	CopyWorkout(ctx context.Context, userID, workoutID, newName string) (*domain.Workout, error)
	RestartWorkout(ctx context.Context, userID, workoutID string, routine domain.Routine) (*domain.Workout, error)
	DeleteWorkout(ctx context.Context, userID, workoutID string) error
	SetProgress(ctx context.Context, userID, workoutID string, week, day int) error
}

type workoutService struct {
	userRepo    repository.UserRepository
	workoutRepo repository.WorkoutRepository
	batch       repository.BatchWriter
	clock       Clock
	ids         IDGenerator
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	userRepo repository.UserRepository,
	workoutRepo repository.WorkoutRepository,
	batch repository.BatchWriter,
	clock Clock,
	ids IDGenerator,
) WorkoutService {
	return &workoutService{
		userRepo:    userRepo,
		workoutRepo: workoutRepo,
		batch:       batch,
		clock:       clock,
		ids:         ids,
	}
}

// CreateWorkout validates the routine, creates the workout and its embedded
// summary, runs the creation pass of the statistics engine and makes the
// new workout current.
func (s *workoutService) CreateWorkout(ctx context.Context, userID, name string, routine domain.Routine) (*domain.Workout, error) {
	if name == "" {
		return nil, apperr.Misc("workout name is required")
	}
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Workouts) >= user.MaxWorkouts() {
		return nil, apperr.MaxLimit("user has reached the workout limit of %d", user.MaxWorkouts())
	}
	if user.WorkoutInfoByName(name) != nil {
		return nil, apperr.AlreadyExists("a workout named %q already exists", name)
	}
	if err := validateRoutine(user, &routine); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	workout := &domain.Workout{
		ID:          s.ids.NewID(),
		Name:        name,
		CreatorID:   userID,
		CreationUTC: now,
		Routine:     routine,
	}
	user.Workouts = append(user.Workouts, domain.WorkoutInfo{
		WorkoutID:           workout.ID,
		WorkoutName:         name,
		LastSetAsCurrentUTC: now,
	})
	stats.UpdateOwnedExercisesOnCreation(user, workout, user.Settings.UpdateDefaultWeightOnSave)
	user.CurrentWorkoutID = workout.ID
	user.UpdatedAt = now

	err = s.batch.ExecuteBatchWrite(ctx, repository.BatchWrite{
		WorkoutsToPut: []*domain.Workout{workout},
		UsersToPut:    []*domain.User{user},
	})
	if err != nil {
		return nil, err
	}
	return workout, nil
}

// GetWorkout returns a workout owned by the user.
func (s *workoutService) GetWorkout(ctx context.Context, userID, workoutID string) (*domain.Workout, error) {
	workout, err := s.getOwnedWorkout(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}
	return workout, nil
}

// EditWorkoutRoutine replaces the routine wholesale, resyncs the catalog
// back-references and clamps the progress cursor to the new shape.
func (s *workoutService) EditWorkoutRoutine(ctx context.Context, userID, workoutID string, routine domain.Routine) (*domain.Workout, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	workout, err := s.getOwnedWorkout(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}
	if err := validateRoutine(user, &routine); err != nil {
		return nil, err
	}

	workout.Routine = routine
	stats.RemoveWorkoutReferences(user, workoutID)
	stats.UpdateOwnedExercisesOnCreation(user, workout, user.Settings.UpdateDefaultWeightOnSave)
	if info := user.WorkoutInfoByID(workoutID); info != nil {
		clampProgressCursor(info, &workout.Routine)
	}
	user.UpdatedAt = s.clock.Now()

	err = s.batch.ExecuteBatchWrite(ctx, repository.BatchWrite{
		WorkoutsToPut: []*domain.Workout{workout},
		UsersToPut:    []*domain.User{user},
	})
	if err != nil {
		return nil, err
	}
	return workout, nil
}

// RenameWorkout renames the document and keeps the embedded summary and the
// back-reference names in sync.
func (s *workoutService) RenameWorkout(ctx context.Context, userID, workoutID, newName string) error {
	if newName == "" {
		return apperr.Misc("workout name is required")
	}
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	workout, err := s.getOwnedWorkout(ctx, userID, workoutID)
	if err != nil {
		return err
	}
	if existing := user.WorkoutInfoByName(newName); existing != nil && existing.WorkoutID != workoutID {
		return apperr.AlreadyExists("a workout named %q already exists", newName)
	}

	workout.Name = newName
	if info := user.WorkoutInfoByID(workoutID); info != nil {
		info.WorkoutName = newName
	}
	stats.SyncWorkoutName(user, workoutID, newName)
	user.UpdatedAt = s.clock.Now()

	return s.batch.ExecuteBatchWrite(ctx, repository.BatchWrite{
		WorkoutsToPut: []*domain.Workout{workout},
		UsersToPut:    []*domain.User{user},
	})
}

// CopyWorkout duplicates an owned workout under a new name with a fresh
// summary and all completion flags cleared.
func (s *workoutService) CopyWorkout(ctx context.Context, userID, workoutID, newName string) (*domain.Workout, error) {
	if newName == "" {
		return nil, apperr.Misc("workout name is required")
	}
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	source, err := s.getOwnedWorkout(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}
	if len(user.Workouts) >= user.MaxWorkouts() {
		return nil, apperr.MaxLimit("user has reached the workout limit of %d", user.MaxWorkouts())
	}
	if user.WorkoutInfoByName(newName) != nil {
		return nil, apperr.AlreadyExists("a workout named %q already exists", newName)
	}

	now := s.clock.Now()
	copied := &domain.Workout{
		ID:          s.ids.NewID(),
		Name:        newName,
		CreatorID:   userID,
		CreationUTC: now,
		Routine:     copyRoutine(&source.Routine),
	}
	user.Workouts = append(user.Workouts, domain.WorkoutInfo{
		WorkoutID:           copied.ID,
		WorkoutName:         newName,
		LastSetAsCurrentUTC: now,
	})
	stats.UpdateOwnedExercisesOnCreation(user, copied, user.Settings.UpdateDefaultWeightOnSave)
	user.UpdatedAt = now

	err = s.batch.ExecuteBatchWrite(ctx, repository.BatchWrite{
		WorkoutsToPut: []*domain.Workout{copied},
		UsersToPut:    []*domain.User{user},
	})
	if err != nil {
		return nil, err
	}
	return copied, nil
}

// RestartWorkout takes the client's final routine state for the finished
// cycle, folds it into the completion statistics, resets the completion
// flags and rewinds the progress cursor.
func (s *workoutService) RestartWorkout(ctx context.Context, userID, workoutID string, routine domain.Routine) (*domain.Workout, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	workout, err := s.getOwnedWorkout(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}
	if err := validateRoutine(user, &routine); err != nil {
		return nil, err
	}
	info := user.WorkoutInfoByID(workoutID)
	if info == nil {
		return nil, apperr.Misc("workout %s has no summary entry on its owner", workoutID)
	}

	workout.Routine = routine
	stats.RestartWorkout(&workout.Routine, info, user)
	info.TimesRestarted++
	info.CurrentWeek = 0
	info.CurrentDay = 0
	now := s.clock.Now()
	info.LastSetAsCurrentUTC = now
	user.UpdatedAt = now

	err = s.batch.ExecuteBatchWrite(ctx, repository.BatchWrite{
		WorkoutsToPut: []*domain.Workout{workout},
		UsersToPut:    []*domain.User{user},
	})
	if err != nil {
		return nil, err
	}
	return workout, nil
}

// DeleteWorkout removes the workout document, its embedded summary and its
// catalog back-references in one batch.
func (s *workoutService) DeleteWorkout(ctx context.Context, userID, workoutID string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := s.getOwnedWorkout(ctx, userID, workoutID); err != nil {
		return err
	}

	user.RemoveWorkoutInfo(workoutID)
	stats.RemoveWorkoutReferences(user, workoutID)
	if user.CurrentWorkoutID == workoutID {
		user.CurrentWorkoutID = ""
	}
	user.UpdatedAt = s.clock.Now()

	return s.batch.ExecuteBatchWrite(ctx, repository.BatchWrite{
		UsersToPut:       []*domain.User{user},
		WorkoutsToDelete: []string{workoutID},
	})
}

// SetProgress moves the bounds-checked progress cursor and makes the
// workout current.
func (s *workoutService) SetProgress(ctx context.Context, userID, workoutID string, week, day int) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	workout, err := s.getOwnedWorkout(ctx, userID, workoutID)
	if err != nil {
		return err
	}
	info := user.WorkoutInfoByID(workoutID)
	if info == nil {
		return apperr.Misc("workout %s has no summary entry on its owner", workoutID)
	}
	if week < 0 || week >= len(workout.Routine.Weeks) {
		return apperr.Misc("week %d is out of range", week)
	}
	if day < 0 || day >= len(workout.Routine.Weeks[week].Days) {
		return apperr.Misc("day %d is out of range", day)
	}

	info.CurrentWeek = week
	info.CurrentDay = day
	now := s.clock.Now()
	info.LastSetAsCurrentUTC = now
	user.CurrentWorkoutID = workoutID
	user.UpdatedAt = now

	return s.userRepo.Put(ctx, user)
}

// getOwnedWorkout loads a workout and checks ownership. A workout that
// exists but belongs to someone else is forbidden, not hidden: the ID was
// valid.
func (s *workoutService) getOwnedWorkout(ctx context.Context, userID, workoutID string) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("workout %s not found", workoutID)
		}
		return nil, err
	}
	if workout.CreatorID != userID {
		return nil, apperr.Forbidden("workout %s is not owned by this user", workoutID)
	}
	return workout, nil
}

func (s *workoutService) getUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user %s not found", id)
		}
		return nil, err
	}
	return user, nil
}

// copyRoutine deep-copies a routine with completion flags cleared.
func copyRoutine(src *domain.Routine) domain.Routine {
	dst := domain.Routine{Weeks: make([]domain.RoutineWeek, len(src.Weeks))}
	for w := range src.Weeks {
		week := domain.RoutineWeek{Days: make([]domain.RoutineDay, len(src.Weeks[w].Days))}
		for d := range src.Weeks[w].Days {
			srcDay := &src.Weeks[w].Days[d]
			day := domain.RoutineDay{
				Tag:       srcDay.Tag,
				Exercises: make([]domain.RoutineExercise, len(srcDay.Exercises)),
			}
			copy(day.Exercises, srcDay.Exercises)
			for i := range day.Exercises {
				day.Exercises[i].Completed = false
			}
			week.Days[d] = day
		}
		dst.Weeks[w] = week
	}
	return dst
}
