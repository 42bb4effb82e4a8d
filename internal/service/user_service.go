package service

import (
	"context"
	"errors"

	"liftlog/workout-app/internal/apperr"
	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"

	log "github.com/sirupsen/logrus"
)

// UserService covers account-level operations outside the auth flow:
// profile reads, settings, push device registration and account deletion.
type UserService interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, callerID, username string) (*domain.User, error)
	UpdateSettings(ctx context.Context, userID string, settings domain.UserSettings) error
	RegisterPushDevice(ctx context.Context, userID, endpointARN string) error
	DeleteAccount(ctx context.Context, userID string) error
}

type userService struct {
	userRepo    repository.UserRepository
	workoutRepo repository.WorkoutRepository
	sharedRepo  repository.SharedWorkoutRepository
	clock       Clock
}

// NewUserService creates a new instance of userService.
func NewUserService(
	userRepo repository.UserRepository,
	workoutRepo repository.WorkoutRepository,
	sharedRepo repository.SharedWorkoutRepository,
	clock Clock,
) UserService {
	return &userService{
		userRepo:    userRepo,
		workoutRepo: workoutRepo,
		sharedRepo:  sharedRepo,
		clock:       clock,
	}
}

// GetUser returns the caller's own document.
func (s *userService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.getUser(ctx, userID)
}

// FindUserByUsername looks up another user's public profile. Private users
// are visible only to their confirmed friends.
func (s *userService) FindUserByUsername(ctx context.Context, callerID, username string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user %q not found", username)
		}
		return nil, err
	}
	if user.ID != callerID && user.Settings.Private && !user.IsFriendsWith(callerID) {
		return nil, apperr.NotFound("user %q not found", username)
	}
	return user, nil
}

// UpdateSettings replaces the user's preference block.
func (s *userService) UpdateSettings(ctx context.Context, userID string, settings domain.UserSettings) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	user.Settings = settings
	user.UpdatedAt = s.clock.Now()
	return s.userRepo.Put(ctx, user)
}

// RegisterPushDevice stores the SNS endpoint for the user's device. An
// empty ARN unregisters it.
func (s *userService) RegisterPushDevice(ctx context.Context, userID, endpointARN string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	user.PushEndpointARN = endpointARN
	user.UpdatedAt = s.clock.Now()
	return s.userRepo.Put(ctx, user)
}

// DeleteAccount removes the user and fans out to every document that
// references them: owned workouts, outstanding shares, and each friend's or
// requester's lists. The fan-out is a sequence of independent writes, not a
// transaction; a crash partway leaves a partially-cleaned state and
// failures are logged, not retried.
func (s *userService) DeleteAccount(ctx context.Context, userID string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	for _, info := range user.Workouts {
		if err := s.workoutRepo.Delete(ctx, info.WorkoutID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			log.WithError(err).WithField("workout", info.WorkoutID).Warn("failed to delete workout during account deletion")
		}
	}
	for _, preview := range user.ReceivedWorkouts {
		if err := s.sharedRepo.Delete(ctx, preview.SharedWorkoutID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			log.WithError(err).WithField("sharedWorkout", preview.SharedWorkoutID).Warn("failed to delete share during account deletion")
		}
	}

	// Per-friend read-modify-write; each one stands alone.
	now := s.clock.Now()

	// Shares the user sent are still pending on other users' documents.
	sent, err := s.sharedRepo.GetBySenderID(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user", userID).Warn("failed to list sent shares during account deletion")
	}
	for _, shared := range sent {
		if err := s.sharedRepo.Delete(ctx, shared.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			log.WithError(err).WithField("sharedWorkout", shared.ID).Warn("failed to delete sent share during account deletion")
			continue
		}
		recipient, err := s.userRepo.GetByID(ctx, shared.RecipientID)
		if err != nil {
			log.WithError(err).WithField("user", shared.RecipientID).Warn("failed to load recipient during account deletion")
			continue
		}
		if recipient.RemoveReceivedWorkout(shared.ID) {
			recipient.UpdatedAt = now
			if err := s.userRepo.Put(ctx, recipient); err != nil {
				log.WithError(err).WithField("user", recipient.ID).Warn("failed to clean recipient preview during account deletion")
			}
		}
	}

	for _, friend := range user.Friends {
		other, err := s.userRepo.GetByID(ctx, friend.UserID)
		if err != nil {
			log.WithError(err).WithField("user", friend.UserID).Warn("failed to load friend during account deletion")
			continue
		}
		other.RemoveFriend(userID)
		other.RemoveFriendRequest(userID)
		other.UpdatedAt = now
		if err := s.userRepo.Put(ctx, other); err != nil {
			log.WithError(err).WithField("user", other.ID).Warn("failed to clean friend during account deletion")
		}
	}
	for _, request := range user.FriendRequests {
		other, err := s.userRepo.GetByID(ctx, request.UserID)
		if err != nil {
			log.WithError(err).WithField("user", request.UserID).Warn("failed to load requester during account deletion")
			continue
		}
		other.RemoveFriend(userID)
		other.UpdatedAt = now
		if err := s.userRepo.Put(ctx, other); err != nil {
			log.WithError(err).WithField("user", other.ID).Warn("failed to clean requester during account deletion")
		}
	}

	return s.userRepo.Delete(ctx, userID)
}

func (s *userService) getUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user %s not found", id)
		}
		return nil, err
	}
	return user, nil
}
