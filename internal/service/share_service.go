package service

import (
	"context"
	"errors"

	"liftlog/workout-app/internal/apperr"
	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/push"
	"liftlog/workout-app/internal/repository"
	"liftlog/workout-app/internal/snapshot"
	"liftlog/workout-app/internal/stats"

	log "github.com/sirupsen/logrus"
)

// ShareService orchestrates the workout-sharing workflow. A share is a
// single-use, two-phase handoff: Pending from Share until the recipient
// accepts (share deleted, workout created) or declines (share deleted).
type ShareService interface {
	ShareWorkout(ctx context.Context, senderID, recipientID, workoutID string) (*domain.SharedWorkout, error)
	GetReceivedWorkout(ctx context.Context, userID, sharedWorkoutID string) (*domain.SharedWorkout, error)
	GetReceivedWorkouts(ctx context.Context, userID string) ([]domain.SharedWorkout, error)
	AcceptReceivedWorkout(ctx context.Context, userID, sharedWorkoutID, newName string) (*domain.Workout, error)
	DeclineReceivedWorkout(ctx context.Context, userID, sharedWorkoutID string) error
	SetReceivedWorkoutSeen(ctx context.Context, userID, sharedWorkoutID string) error
	SetAllReceivedWorkoutsSeen(ctx context.Context, userID string) error
}

type shareService struct {
	userRepo    repository.UserRepository
	workoutRepo repository.WorkoutRepository
	sharedRepo  repository.SharedWorkoutRepository
	batch       repository.BatchWriter
	dispatcher  push.Dispatcher
	clock       Clock
	ids         IDGenerator
}

// NewShareService creates a new instance of shareService.
func NewShareService(
	userRepo repository.UserRepository,
	workoutRepo repository.WorkoutRepository,
	sharedRepo repository.SharedWorkoutRepository,
	batch repository.BatchWriter,
	dispatcher push.Dispatcher,
	clock Clock,
	ids IDGenerator,
) ShareService {
	return &shareService{
		userRepo:    userRepo,
		workoutRepo: workoutRepo,
		sharedRepo:  sharedRepo,
		batch:       batch,
		dispatcher:  dispatcher,
		clock:       clock,
		ids:         ids,
	}
}

// ShareWorkout snapshots one of the sender's workouts and hands it to the
// recipient: the SharedWorkout document, the recipient's preview entry and
// the sender's sent-count increment land in one batch. The push dispatch
// afterwards is best-effort and never rolls the share back.
func (s *shareService) ShareWorkout(ctx context.Context, senderID, recipientID, workoutID string) (*domain.SharedWorkout, error) {
	if senderID == recipientID {
		return nil, apperr.Misc("cannot share a workout with yourself")
	}

	sender, err := s.getUser(ctx, senderID)
	if err != nil {
		return nil, err
	}
	recipient, err := s.getUser(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	workout, err := s.getWorkout(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	if workout.CreatorID != senderID {
		return nil, apperr.Forbidden("workout %s is not owned by the sender", workoutID)
	}
	// A private account hides from non-friends. Reported as not-found so the
	// caller cannot probe for account existence.
	if recipient.Settings.Private && !recipient.IsFriendsWith(senderID) {
		return nil, apperr.NotFound("user %s not found", recipientID)
	}
	if len(recipient.ReceivedWorkouts) >= domain.MaxReceivedWorkouts {
		return nil, apperr.MaxLimit("recipient has reached the received workout limit of %d", domain.MaxReceivedWorkouts)
	}
	if sender.WorkoutsSent >= sender.MaxWorkoutsSent() {
		return nil, apperr.MaxLimit("sender has reached the sent workout limit of %d", sender.MaxWorkoutsSent())
	}

	shared, err := snapshot.BuildSharedWorkout(workout, sender, recipientID, s.ids.NewID())
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	preview := domain.SharedWorkoutInfo{
		SharedWorkoutID:   shared.ID,
		WorkoutName:       shared.WorkoutName,
		SharedUTC:         now,
		SenderID:          sender.ID,
		SenderUsername:    sender.Username,
		TotalDays:         workout.Routine.TotalDays(),
		MostFrequentFocus: stats.FindMostFrequentFocus(sender, &workout.Routine),
	}
	recipient.ReceivedWorkouts = append(recipient.ReceivedWorkouts, preview)
	recipient.UpdatedAt = now
	sender.WorkoutsSent++
	sender.UpdatedAt = now

	err = s.batch.ExecuteBatchWrite(ctx, repository.BatchWrite{
		UsersToPut:          []*domain.User{sender, recipient},
		SharedWorkoutsToPut: []*domain.SharedWorkout{shared},
	})
	if err != nil {
		return nil, err
	}

	if err := s.dispatcher.SendWorkoutSharedNotification(ctx, recipient, preview); err != nil {
		log.WithError(err).WithField("recipient", recipient.ID).Warn("workout shared notification failed")
	}
	return shared, nil
}

// GetReceivedWorkout returns the full shared workout for its recipient.
func (s *shareService) GetReceivedWorkout(ctx context.Context, userID, sharedWorkoutID string) (*domain.SharedWorkout, error) {
	shared, err := s.getSharedWorkout(ctx, sharedWorkoutID)
	if err != nil {
		return nil, err
	}
	if shared.RecipientID != userID {
		return nil, apperr.Forbidden("shared workout %s is not addressed to this user", sharedWorkoutID)
	}
	return shared, nil
}

// GetReceivedWorkouts returns every pending share addressed to the user.
func (s *shareService) GetReceivedWorkouts(ctx context.Context, userID string) ([]domain.SharedWorkout, error) {
	return s.sharedRepo.GetByRecipientID(ctx, userID)
}

// AcceptReceivedWorkout turns a pending share into an owned workout. The
// recipient's catalog is reconciled first: every distinct exercise name the
// snapshot carries that is missing from the catalog becomes a new owned
// exercise with the frozen focuses and video URL and zero defaults. The new
// workout, the mutated user and the share deletion land in one batch.
func (s *shareService) AcceptReceivedWorkout(ctx context.Context, userID, sharedWorkoutID, newName string) (*domain.Workout, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	shared, err := s.getSharedWorkout(ctx, sharedWorkoutID)
	if err != nil {
		return nil, err
	}
	if shared.RecipientID != userID {
		return nil, apperr.Forbidden("shared workout %s is not addressed to this user", sharedWorkoutID)
	}

	if len(user.Workouts) >= user.MaxWorkouts() {
		return nil, apperr.MaxLimit("user has reached the workout limit of %d", user.MaxWorkouts())
	}
	name := shared.WorkoutName
	if newName != "" {
		name = newName
	}
	if user.WorkoutInfoByName(name) != nil {
		return nil, apperr.AlreadyExists("a workout named %q already exists", name)
	}

	var missing []domain.SharedWorkoutDistinctExercise
	for _, distinct := range shared.DistinctExercises {
		if user.ExerciseByName(distinct.ExerciseName) == nil {
			missing = append(missing, distinct)
		}
	}
	if len(user.Exercises)+len(missing) > user.MaxExercises() {
		return nil, apperr.MaxLimit("accepting would exceed the exercise limit of %d", user.MaxExercises())
	}

	// Catalog reconciliation: defaults stay zero, the creation pass below may
	// raise the default weight from the routine's occurrences.
	for _, distinct := range missing {
		user.Exercises = append(user.Exercises, domain.OwnedExercise{
			ID:       s.ids.NewID(),
			Name:     distinct.ExerciseName,
			Focuses:  append([]string(nil), distinct.Focuses...),
			VideoURL: distinct.VideoURL,
		})
	}

	nameToID := make(map[string]string, len(shared.DistinctExercises))
	for _, distinct := range shared.DistinctExercises {
		exercise := user.ExerciseByName(distinct.ExerciseName)
		if exercise == nil {
			return nil, apperr.Misc("exercise %q missing after catalog reconciliation", distinct.ExerciseName)
		}
		nameToID[distinct.ExerciseName] = exercise.ID
	}

	routine, err := snapshot.BuildRoutine(&shared.Routine, nameToID)
	if err != nil {
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
	user.RemoveReceivedWorkout(sharedWorkoutID)
	user.UpdatedAt = now

	err = s.batch.ExecuteBatchWrite(ctx, repository.BatchWrite{
		WorkoutsToPut:          []*domain.Workout{workout},
		UsersToPut:             []*domain.User{user},
		SharedWorkoutsToDelete: []string{sharedWorkoutID},
	})
	if err != nil {
		return nil, err
	}
	return workout, nil
}

// DeclineReceivedWorkout removes the pending share and its preview entry.
// No catalog or statistics side effects.
func (s *shareService) DeclineReceivedWorkout(ctx context.Context, userID, sharedWorkoutID string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	shared, err := s.getSharedWorkout(ctx, sharedWorkoutID)
	if err != nil {
		return err
	}
	if shared.RecipientID != userID {
		return apperr.Forbidden("shared workout %s is not addressed to this user", sharedWorkoutID)
	}

	user.RemoveReceivedWorkout(sharedWorkoutID)
	user.UpdatedAt = s.clock.Now()

	return s.batch.ExecuteBatchWrite(ctx, repository.BatchWrite{
		UsersToPut:             []*domain.User{user},
		SharedWorkoutsToDelete: []string{sharedWorkoutID},
	})
}

// SetReceivedWorkoutSeen marks one preview entry as seen.
func (s *shareService) SetReceivedWorkoutSeen(ctx context.Context, userID, sharedWorkoutID string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	preview := user.ReceivedWorkoutByID(sharedWorkoutID)
	if preview == nil {
		return apperr.NotFound("received workout %s not found", sharedWorkoutID)
	}
	if preview.Seen {
		return nil
	}
	preview.Seen = true
	user.UpdatedAt = s.clock.Now()
	return s.userRepo.Put(ctx, user)
}

// SetAllReceivedWorkoutsSeen marks every preview entry as seen.
func (s *shareService) SetAllReceivedWorkoutsSeen(ctx context.Context, userID string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	changed := false
	for i := range user.ReceivedWorkouts {
		if !user.ReceivedWorkouts[i].Seen {
			user.ReceivedWorkouts[i].Seen = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	user.UpdatedAt = s.clock.Now()
	return s.userRepo.Put(ctx, user)
}

func (s *shareService) getUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user %s not found", id)
		}
		return nil, err
	}
	return user, nil
}

func (s *shareService) getWorkout(ctx context.Context, id string) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("workout %s not found", id)
		}
		return nil, err
	}
	return workout, nil
}

func (s *shareService) getSharedWorkout(ctx context.Context, id string) (*domain.SharedWorkout, error) {
	shared, err := s.sharedRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("shared workout %s not found", id)
		}
		return nil, err
	}
	return shared, nil
}
