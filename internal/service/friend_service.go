package service

import (
	"context"
	"errors"

	"liftlog/workout-app/internal/apperr"
	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/push"
	"liftlog/workout-app/internal/repository"

	log "github.com/sirupsen/logrus"
)

// FriendService runs the befriending workflow. A request lives as an
// unconfirmed FriendInfo on the sender and a FriendRequest on the
// recipient; accepting confirms both sides. Every two-user mutation goes
// through the batch writer.
type FriendService interface {
	SendFriendRequest(ctx context.Context, senderID, recipientUsername string) error
	AcceptFriendRequest(ctx context.Context, userID, requesterID string) error
	DeclineFriendRequest(ctx context.Context, userID, requesterID string) error
	CancelFriendRequest(ctx context.Context, senderID, recipientID string) error
	RemoveFriend(ctx context.Context, userID, friendID string) error
}

type friendService struct {
	userRepo   repository.UserRepository
	batch      repository.BatchWriter
	dispatcher push.Dispatcher
	clock      Clock
}

// NewFriendService creates a new instance of friendService.
func NewFriendService(
	userRepo repository.UserRepository,
	batch repository.BatchWriter,
	dispatcher push.Dispatcher,
	clock Clock,
) FriendService {
	return &friendService{
		userRepo:   userRepo,
		batch:      batch,
		dispatcher: dispatcher,
		clock:      clock,
	}
}

// SendFriendRequest records a pending request on both sides. Private
// recipients who are not already friends look like missing users.
func (s *friendService) SendFriendRequest(ctx context.Context, senderID, recipientUsername string) error {
	sender, err := s.getUser(ctx, senderID)
	if err != nil {
		return err
	}
	recipient, err := s.userRepo.GetByUsername(ctx, recipientUsername)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user %q not found", recipientUsername)
		}
		return err
	}
	if recipient.ID == senderID {
		return apperr.Misc("cannot send a friend request to yourself")
	}
	if recipient.Settings.Private && !recipient.IsFriendsWith(senderID) {
		return apperr.NotFound("user %q not found", recipientUsername)
	}
	if sender.FriendByID(recipient.ID) != nil {
		return apperr.AlreadyExists("friend request to %q already exists", recipientUsername)
	}
	if len(sender.Friends) >= domain.MaxFriends {
		return apperr.MaxLimit("sender has reached the friend limit of %d", domain.MaxFriends)
	}
	if len(recipient.FriendRequests) >= domain.MaxFriendRequests {
		return apperr.MaxLimit("recipient has reached the friend request limit of %d", domain.MaxFriendRequests)
	}

	now := s.clock.Now()
	sender.Friends = append(sender.Friends, domain.FriendInfo{
		UserID:   recipient.ID,
		Username: recipient.Username,
	})
	request := domain.FriendRequest{
		UserID:     sender.ID,
		Username:   sender.Username,
		RequestUTC: now,
	}
	recipient.FriendRequests = append(recipient.FriendRequests, request)
	sender.UpdatedAt = now
	recipient.UpdatedAt = now

	err = s.batch.ExecuteBatchWrite(ctx, repository.BatchWrite{
		UsersToPut: []*domain.User{sender, recipient},
	})
	if err != nil {
		return err
	}

	if err := s.dispatcher.SendFriendRequestNotification(ctx, recipient, request); err != nil {
		log.WithError(err).WithField("recipient", recipient.ID).Warn("friend request notification failed")
	}
	return nil
}

// AcceptFriendRequest confirms the friendship on both documents.
func (s *friendService) AcceptFriendRequest(ctx context.Context, userID, requesterID string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.FriendRequestFrom(requesterID) == nil {
		return apperr.NotFound("no friend request from user %s", requesterID)
	}
	requester, err := s.getUser(ctx, requesterID)
	if err != nil {
		return err
	}
	if len(user.Friends) >= domain.MaxFriends {
		return apperr.MaxLimit("user has reached the friend limit of %d", domain.MaxFriends)
	}

	now := s.clock.Now()
	user.RemoveFriendRequest(requesterID)
	user.Friends = append(user.Friends, domain.FriendInfo{
		UserID:    requester.ID,
		Username:  requester.Username,
		Confirmed: true,
	})
	// The requester's side was recorded unconfirmed when the request was sent.
	if pending := requester.FriendByID(userID); pending != nil {
		pending.Confirmed = true
	} else {
		requester.Friends = append(requester.Friends, domain.FriendInfo{
			UserID:    user.ID,
			Username:  user.Username,
			Confirmed: true,
		})
	}
	user.UpdatedAt = now
	requester.UpdatedAt = now

	err = s.batch.ExecuteBatchWrite(ctx, repository.BatchWrite{
		UsersToPut: []*domain.User{user, requester},
	})
	if err != nil {
		return err
	}

	friend := domain.FriendInfo{UserID: user.ID, Username: user.Username, Confirmed: true}
	if err := s.dispatcher.SendFriendRequestAcceptedNotification(ctx, requester, friend); err != nil {
		log.WithError(err).WithField("recipient", requester.ID).Warn("friend accepted notification failed")
	}
	return nil
}

// DeclineFriendRequest drops the request and the sender's pending entry.
func (s *friendService) DeclineFriendRequest(ctx context.Context, userID, requesterID string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.RemoveFriendRequest(requesterID) {
		return apperr.NotFound("no friend request from user %s", requesterID)
	}
	requester, err := s.getUser(ctx, requesterID)
	if err != nil {
		return err
	}
	requester.RemoveFriend(userID)

	now := s.clock.Now()
	user.UpdatedAt = now
	requester.UpdatedAt = now
	return s.batch.ExecuteBatchWrite(ctx, repository.BatchWrite{
		UsersToPut: []*domain.User{user, requester},
	})
}

// CancelFriendRequest withdraws a request the sender made.
func (s *friendService) CancelFriendRequest(ctx context.Context, senderID, recipientID string) error {
	sender, err := s.getUser(ctx, senderID)
	if err != nil {
		return err
	}
	pending := sender.FriendByID(recipientID)
	if pending == nil || pending.Confirmed {
		return apperr.NotFound("no pending friend request to user %s", recipientID)
	}
	recipient, err := s.getUser(ctx, recipientID)
	if err != nil {
		return err
	}
	sender.RemoveFriend(recipientID)
	recipient.RemoveFriendRequest(senderID)

	now := s.clock.Now()
	sender.UpdatedAt = now
	recipient.UpdatedAt = now
	return s.batch.ExecuteBatchWrite(ctx, repository.BatchWrite{
		UsersToPut: []*domain.User{sender, recipient},
	})
}

// RemoveFriend removes a confirmed friendship from both sides.
func (s *friendService) RemoveFriend(ctx context.Context, userID, friendID string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsFriendsWith(friendID) {
		return apperr.NotFound("user %s is not a friend", friendID)
	}
	friend, err := s.getUser(ctx, friendID)
	if err != nil {
		return err
	}
	user.RemoveFriend(friendID)
	friend.RemoveFriend(userID)

	now := s.clock.Now()
	user.UpdatedAt = now
	friend.UpdatedAt = now
	return s.batch.ExecuteBatchWrite(ctx, repository.BatchWrite{
		UsersToPut: []*domain.User{user, friend},
	})
}

func (s *friendService) getUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user %s not found", id)
		}
		return nil, err
	}
	return user, nil
}
