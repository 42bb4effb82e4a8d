// Package push delivers best-effort notifications to users' devices. Every
// send is fire-and-forget from the workflow's point of view: callers log
// failures and never let them fail the triggering operation.
package push

import (
	"context"

	"liftlog/workout-app/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Dispatcher is the push-notification collaborator consumed by the service
// layer.
type Dispatcher interface {
	SendWorkoutSharedNotification(ctx context.Context, recipient *domain.User, preview domain.SharedWorkoutInfo) error
	SendFriendRequestNotification(ctx context.Context, recipient *domain.User, request domain.FriendRequest) error
	SendFriendRequestAcceptedNotification(ctx context.Context, recipient *domain.User, friend domain.FriendInfo) error
}

// logDispatcher writes notifications to the log instead of delivering them.
// Used in development and tests.
type logDispatcher struct{}

// NewLogDispatcher creates a dispatcher that only logs.
func NewLogDispatcher() Dispatcher {
	return &logDispatcher{}
}

func (d *logDispatcher) SendWorkoutSharedNotification(_ context.Context, recipient *domain.User, preview domain.SharedWorkoutInfo) error {
	log.WithFields(log.Fields{
		"recipient":     recipient.Username,
		"workout":       preview.WorkoutName,
		"sharedWorkout": preview.SharedWorkoutID,
	}).Info("push: workout shared")
	return nil
}

func (d *logDispatcher) SendFriendRequestNotification(_ context.Context, recipient *domain.User, request domain.FriendRequest) error {
	log.WithFields(log.Fields{
		"recipient": recipient.Username,
		"from":      request.Username,
	}).Info("push: friend request")
	return nil
}

func (d *logDispatcher) SendFriendRequestAcceptedNotification(_ context.Context, recipient *domain.User, friend domain.FriendInfo) error {
	log.WithFields(log.Fields{
		"recipient": recipient.Username,
		"friend":    friend.Username,
	}).Info("push: friend request accepted")
	return nil
}
