package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"
)

// In-memory fakes backing the service tests. Gets return deep copies so a
// service mutation only reaches the store through a Put or a batch write,
// mirroring the real persistence contract.

func cloneUser(u *domain.User) *domain.User {
	b, _ := json.Marshal(u)
	var out domain.User
	_ = json.Unmarshal(b, &out)
	out.PasswordHash = u.PasswordHash
	out.PushEndpointARN = u.PushEndpointARN
	return &out
}

func cloneWorkout(w *domain.Workout) *domain.Workout {
	b, _ := json.Marshal(w)
	var out domain.Workout
	_ = json.Unmarshal(b, &out)
	return &out
}

func cloneSharedWorkout(s *domain.SharedWorkout) *domain.SharedWorkout {
	b, _ := json.Marshal(s)
	var out domain.SharedWorkout
	_ = json.Unmarshal(b, &out)
	return &out
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		repo.users[u.ID] = cloneUser(u)
	}
	return repo
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repository.ErrConflict
		}
	}
	f.users[user.ID] = cloneUser(user)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(user), nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) Put(_ context.Context, user *domain.User) error {
	f.users[user.ID] = cloneUser(user)
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeWorkoutRepo struct {
	workouts map[string]*domain.Workout
}

func newFakeWorkoutRepo(workouts ...*domain.Workout) *fakeWorkoutRepo {
	repo := &fakeWorkoutRepo{workouts: make(map[string]*domain.Workout)}
	for _, w := range workouts {
		repo.workouts[w.ID] = cloneWorkout(w)
	}
	return repo
}

func (f *fakeWorkoutRepo) GetByID(_ context.Context, id string) (*domain.Workout, error) {
	workout, ok := f.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneWorkout(workout), nil
}

func (f *fakeWorkoutRepo) Put(_ context.Context, workout *domain.Workout) error {
	f.workouts[workout.ID] = cloneWorkout(workout)
	return nil
}

func (f *fakeWorkoutRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.workouts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.workouts, id)
	return nil
}

type fakeSharedWorkoutRepo struct {
	shares map[string]*domain.SharedWorkout
}

func newFakeSharedWorkoutRepo(shares ...*domain.SharedWorkout) *fakeSharedWorkoutRepo {
	repo := &fakeSharedWorkoutRepo{shares: make(map[string]*domain.SharedWorkout)}
	for _, s := range shares {
		repo.shares[s.ID] = cloneSharedWorkout(s)
	}
	return repo
}

func (f *fakeSharedWorkoutRepo) GetByID(_ context.Context, id string) (*domain.SharedWorkout, error) {
	shared, ok := f.shares[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneSharedWorkout(shared), nil
}

func (f *fakeSharedWorkoutRepo) GetByRecipientID(_ context.Context, recipientID string) ([]domain.SharedWorkout, error) {
	var out []domain.SharedWorkout
	for _, shared := range f.shares {
		if shared.RecipientID == recipientID {
			out = append(out, *cloneSharedWorkout(shared))
		}
	}
	return out, nil
}

func (f *fakeSharedWorkoutRepo) GetBySenderID(_ context.Context, senderID string) ([]domain.SharedWorkout, error) {
	var out []domain.SharedWorkout
	for _, shared := range f.shares {
		if shared.SenderID == senderID {
			out = append(out, *cloneSharedWorkout(shared))
		}
	}
	return out, nil
}

func (f *fakeSharedWorkoutRepo) Put(_ context.Context, sharedWorkout *domain.SharedWorkout) error {
	f.shares[sharedWorkout.ID] = cloneSharedWorkout(sharedWorkout)
	return nil
}

func (f *fakeSharedWorkoutRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.shares[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.shares, id)
	return nil
}

// fakeBatchWriter applies the batch to the fakes so tests observe the
// post-commit state, and records every batch for assertions.
type fakeBatchWriter struct {
	users    *fakeUserRepo
	workouts *fakeWorkoutRepo
	shares   *fakeSharedWorkoutRepo
	batches  []repository.BatchWrite
	err      error
}

func newFakeBatchWriter(users *fakeUserRepo, workouts *fakeWorkoutRepo, shares *fakeSharedWorkoutRepo) *fakeBatchWriter {
	return &fakeBatchWriter{users: users, workouts: workouts, shares: shares}
}

func (f *fakeBatchWriter) ExecuteBatchWrite(ctx context.Context, batch repository.BatchWrite) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, batch)
	for _, user := range batch.UsersToPut {
		_ = f.users.Put(ctx, user)
	}
	for _, workout := range batch.WorkoutsToPut {
		_ = f.workouts.Put(ctx, workout)
	}
	for _, shared := range batch.SharedWorkoutsToPut {
		_ = f.shares.Put(ctx, shared)
	}
	for _, id := range batch.UsersToDelete {
		delete(f.users.users, id)
	}
	for _, id := range batch.WorkoutsToDelete {
		delete(f.workouts.workouts, id)
	}
	for _, id := range batch.SharedWorkoutsToDelete {
		delete(f.shares.shares, id)
	}
	return nil
}

type fakeDispatcher struct {
	workoutShared  int
	friendRequests int
	friendAccepted int
	err            error
}

func (f *fakeDispatcher) SendWorkoutSharedNotification(context.Context, *domain.User, domain.SharedWorkoutInfo) error {
	f.workoutShared++
	return f.err
}

func (f *fakeDispatcher) SendFriendRequestNotification(context.Context, *domain.User, domain.FriendRequest) error {
	f.friendRequests++
	return f.err
}

func (f *fakeDispatcher) SendFriendRequestAcceptedNotification(context.Context, *domain.User, domain.FriendInfo) error {
	f.friendAccepted++
	return f.err
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// seqIDGenerator hands out id-1, id-2, ... for deterministic assertions.
type seqIDGenerator struct {
	n int
}

func (g *seqIDGenerator) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}
